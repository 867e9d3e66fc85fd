package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kemetion/fantasy-cricket/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(seed []match.Match) *MatchRepository {
	matches := make(map[string]match.Match, len(seed))
	for _, record := range seed {
		matches[record.ID] = record
	}
	return &MatchRepository{matches: matches}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.matches[matchID]
	return record, ok, nil
}

func (r *MatchRepository) ListAll(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, record := range r.matches {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}

func (r *MatchRepository) ListLive(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, record := range r.matches {
		if match.IsLiveStatus(record.Status) {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MatchRepository) Upsert(_ context.Context, record match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.Status = match.NormalizeStatus(record.Status)
	r.matches[record.ID] = record
	return nil
}
