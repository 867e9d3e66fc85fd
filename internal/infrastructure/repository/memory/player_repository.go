package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kemetion/fantasy-cricket/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(seed []player.Player) *PlayerRepository {
	players := make(map[string]player.Player, len(seed))
	for _, record := range seed {
		players[record.ID] = record
	}
	return &PlayerRepository{players: players}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.players[playerID]
	return record, ok, nil
}

func (r *PlayerRepository) ListByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if record, ok := r.players[id]; ok {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListAll(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, record := range r.players {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, record player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[record.ID] = record
	return nil
}
