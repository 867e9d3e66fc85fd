package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kemetion/fantasy-cricket/internal/domain/contest"
)

type ContestRepository struct {
	mu       sync.RWMutex
	contests map[string]contest.Contest
	entries  []contest.Entry
}

func NewContestRepository(seed []contest.Contest) *ContestRepository {
	contests := make(map[string]contest.Contest, len(seed))
	for _, record := range seed {
		contests[record.ID] = record
	}
	return &ContestRepository{contests: contests}
}

func (r *ContestRepository) GetByID(_ context.Context, contestID string) (contest.Contest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.contests[contestID]
	return record, ok, nil
}

func (r *ContestRepository) ListAll(_ context.Context) ([]contest.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Contest, 0, len(r.contests))
	for _, record := range r.contests {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ContestRepository) CreateEntry(_ context.Context, entry contest.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *ContestRepository) GetEntry(_ context.Context, contestID, teamID string) (contest.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.ContestID == contestID && entry.TeamID == teamID {
			return entry, true, nil
		}
	}
	return contest.Entry{}, false, nil
}

func (r *ContestRepository) ListEntriesByContest(_ context.Context, contestID string) ([]contest.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Entry, 0)
	for _, entry := range r.entries {
		if entry.ContestID == contestID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, nil
}

func (r *ContestRepository) CountEntries(_ context.Context, contestID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, entry := range r.entries {
		if entry.ContestID == contestID {
			count++
		}
	}
	return count, nil
}
