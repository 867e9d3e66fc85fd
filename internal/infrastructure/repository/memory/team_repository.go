package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kemetion/fantasy-cricket/internal/domain/fantasy"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]fantasy.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{teams: make(map[string]fantasy.Team)}
}

func (r *TeamRepository) Create(_ context.Context, team fantasy.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams[team.ID] = copyTeam(team)
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (fantasy.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teams[teamID]
	if !ok {
		return fantasy.Team{}, false, nil
	}
	return copyTeam(team), true, nil
}

func (r *TeamRepository) ListByUser(_ context.Context, userID string) ([]fantasy.Team, error) {
	return r.list(func(t fantasy.Team) bool { return t.UserID == userID })
}

func (r *TeamRepository) ListByMatch(_ context.Context, matchID string) ([]fantasy.Team, error) {
	return r.list(func(t fantasy.Team) bool { return t.MatchID == matchID })
}

func (r *TeamRepository) ListAll(_ context.Context) ([]fantasy.Team, error) {
	return r.list(func(fantasy.Team) bool { return true })
}

func (r *TeamRepository) list(keep func(fantasy.Team) bool) ([]fantasy.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Team, 0)
	for _, team := range r.teams {
		if keep(team) {
			out = append(out, copyTeam(team))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func copyTeam(team fantasy.Team) fantasy.Team {
	team.PlayerIDs = append([]string(nil), team.PlayerIDs...)
	return team
}
