package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kemetion/fantasy-cricket/internal/domain/performance"
)

type PerformanceRepository struct {
	mu sync.Mutex
	// revisions keyed by matchID, then playerID, ordered oldest first.
	revisions map[string]map[string][]performance.Performance
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{revisions: make(map[string]map[string][]performance.Performance)}
}

func (r *PerformanceRepository) Append(_ context.Context, record performance.Performance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byPlayer, ok := r.revisions[record.MatchID]
	if !ok {
		byPlayer = make(map[string][]performance.Performance)
		r.revisions[record.MatchID] = byPlayer
	}
	record.Revision = len(byPlayer[record.PlayerID]) + 1
	byPlayer[record.PlayerID] = append(byPlayer[record.PlayerID], record)
	return nil
}

func (r *PerformanceRepository) GetLatest(_ context.Context, matchID, playerID string) (performance.Performance, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	revisions := r.revisions[matchID][playerID]
	if len(revisions) == 0 {
		return performance.Performance{}, false, nil
	}
	return revisions[len(revisions)-1], true, nil
}

func (r *PerformanceRepository) ListLatestByMatch(_ context.Context, matchID string) ([]performance.Performance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byPlayer := r.revisions[matchID]
	out := make([]performance.Performance, 0, len(byPlayer))
	for _, revisions := range byPlayer {
		if len(revisions) > 0 {
			out = append(out, revisions[len(revisions)-1])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}
