package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kemetion/fantasy-cricket/internal/domain/contest"
	"github.com/kemetion/fantasy-cricket/internal/domain/fantasy"
	"github.com/kemetion/fantasy-cricket/internal/domain/match"
	"github.com/kemetion/fantasy-cricket/internal/domain/performance"
	"github.com/kemetion/fantasy-cricket/internal/domain/player"
	"github.com/kemetion/fantasy-cricket/internal/domain/user"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]user.User)}
}

func (r *stubUserRepo) Create(_ context.Context, record user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[record.ID] = record
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.users[userID]
	return record, ok, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.users {
		if record.Email == email {
			return record, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.users {
		if record.Username == username {
			return record, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]user.User, 0, len(r.users))
	for _, record := range r.users {
		out = append(out, record)
	}
	return out, nil
}

type stubMatchRepo struct {
	mu      sync.Mutex
	matches map[string]match.Match
}

func newStubMatchRepo(items ...match.Match) *stubMatchRepo {
	repo := &stubMatchRepo{matches: make(map[string]match.Match)}
	for _, item := range items {
		repo.matches[item.ID] = item
	}
	return repo
}

func (r *stubMatchRepo) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.matches[matchID]
	return record, ok, nil
}

func (r *stubMatchRepo) ListAll(_ context.Context) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Match, 0, len(r.matches))
	for _, record := range r.matches {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubMatchRepo) ListLive(_ context.Context) ([]match.Match, error) {
	all, _ := r.ListAll(context.Background())
	out := make([]match.Match, 0, len(all))
	for _, record := range all {
		if match.IsLiveStatus(record.Status) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *stubMatchRepo) Upsert(_ context.Context, record match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[record.ID] = record
	return nil
}

type stubPlayerRepo struct {
	mu      sync.Mutex
	players map[string]player.Player
}

func newStubPlayerRepo(ids ...string) *stubPlayerRepo {
	repo := &stubPlayerRepo{players: make(map[string]player.Player)}
	for _, playerID := range ids {
		repo.players[playerID] = player.Player{ID: playerID, Name: "player " + playerID, Role: player.RoleBatter}
	}
	return repo
}

func (r *stubPlayerRepo) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.players[playerID]
	return record, ok, nil
}

func (r *stubPlayerRepo) ListByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]player.Player, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if record, ok := r.players[playerID]; ok {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *stubPlayerRepo) ListAll(_ context.Context) ([]player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]player.Player, 0, len(r.players))
	for _, record := range r.players {
		out = append(out, record)
	}
	return out, nil
}

func (r *stubPlayerRepo) Upsert(_ context.Context, record player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[record.ID] = record
	return nil
}

type stubPerformanceRepo struct {
	mu        sync.Mutex
	revisions map[string][]performance.Performance
}

func newStubPerformanceRepo() *stubPerformanceRepo {
	return &stubPerformanceRepo{revisions: make(map[string][]performance.Performance)}
}

func perfKey(matchID, playerID string) string {
	return matchID + "|" + playerID
}

func (r *stubPerformanceRepo) Append(_ context.Context, record performance.Performance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := perfKey(record.MatchID, record.PlayerID)
	record.Revision = len(r.revisions[key]) + 1
	r.revisions[key] = append(r.revisions[key], record)
	return nil
}

func (r *stubPerformanceRepo) GetLatest(_ context.Context, matchID, playerID string) (performance.Performance, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	revisions := r.revisions[perfKey(matchID, playerID)]
	if len(revisions) == 0 {
		return performance.Performance{}, false, nil
	}
	return revisions[len(revisions)-1], true, nil
}

func (r *stubPerformanceRepo) ListLatestByMatch(_ context.Context, matchID string) ([]performance.Performance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]performance.Performance, 0)
	for _, revisions := range r.revisions {
		if len(revisions) == 0 {
			continue
		}
		latest := revisions[len(revisions)-1]
		if latest.MatchID == matchID {
			out = append(out, latest)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

type stubTeamRepo struct {
	mu    sync.Mutex
	teams map[string]fantasy.Team
}

func newStubTeamRepo(items ...fantasy.Team) *stubTeamRepo {
	repo := &stubTeamRepo{teams: make(map[string]fantasy.Team)}
	for _, item := range items {
		repo.teams[item.ID] = item
	}
	return repo
}

func (r *stubTeamRepo) Create(_ context.Context, team fantasy.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams[team.ID] = team
	return nil
}

func (r *stubTeamRepo) GetByID(_ context.Context, teamID string) (fantasy.Team, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[teamID]
	return team, ok, nil
}

func (r *stubTeamRepo) ListByUser(_ context.Context, userID string) ([]fantasy.Team, error) {
	all, _ := r.ListAll(context.Background())
	out := make([]fantasy.Team, 0, len(all))
	for _, team := range all {
		if team.UserID == userID {
			out = append(out, team)
		}
	}
	return out, nil
}

func (r *stubTeamRepo) ListByMatch(_ context.Context, matchID string) ([]fantasy.Team, error) {
	all, _ := r.ListAll(context.Background())
	out := make([]fantasy.Team, 0, len(all))
	for _, team := range all {
		if team.MatchID == matchID {
			out = append(out, team)
		}
	}
	return out, nil
}

func (r *stubTeamRepo) ListAll(_ context.Context) ([]fantasy.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]fantasy.Team, 0, len(r.teams))
	for _, team := range r.teams {
		out = append(out, team)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubContestRepo struct {
	mu       sync.Mutex
	contests map[string]contest.Contest
	entries  []contest.Entry
}

func newStubContestRepo(items ...contest.Contest) *stubContestRepo {
	repo := &stubContestRepo{contests: make(map[string]contest.Contest)}
	for _, item := range items {
		repo.contests[item.ID] = item
	}
	return repo
}

func (r *stubContestRepo) GetByID(_ context.Context, contestID string) (contest.Contest, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.contests[contestID]
	return item, ok, nil
}

func (r *stubContestRepo) ListAll(_ context.Context) ([]contest.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]contest.Contest, 0, len(r.contests))
	for _, item := range r.contests {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubContestRepo) CreateEntry(_ context.Context, entry contest.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubContestRepo) GetEntry(_ context.Context, contestID, teamID string) (contest.Entry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.ContestID == contestID && entry.TeamID == teamID {
			return entry, true, nil
		}
	}
	return contest.Entry{}, false, nil
}

func (r *stubContestRepo) ListEntriesByContest(_ context.Context, contestID string) ([]contest.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]contest.Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		if entry.ContestID == contestID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *stubContestRepo) CountEntries(_ context.Context, contestID string) (int, error) {
	entries, _ := r.ListEntriesByContest(context.Background(), contestID)
	return len(entries), nil
}

type stubIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *stubIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

type stubTokenIssuer struct{}

func (stubTokenIssuer) Issue(principal user.Principal) (string, error) {
	return "token-" + principal.UserID, nil
}

func sequentialPlayerIDs(n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("p%d", i))
	}
	return out
}
