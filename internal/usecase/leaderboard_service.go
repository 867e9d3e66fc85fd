package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kemetion/fantasy-cricket/internal/config"
	"github.com/kemetion/fantasy-cricket/internal/domain/contest"
	"github.com/kemetion/fantasy-cricket/internal/domain/fantasy"
	"github.com/kemetion/fantasy-cricket/internal/domain/scoring"
	"github.com/kemetion/fantasy-cricket/internal/platform/cache"
)

type LeaderboardQuery struct {
	ContestID string
}

type LeaderboardService struct {
	scoring     *ScoringService
	teamRepo    fantasy.Repository
	contestRepo contest.Repository
	store       *cache.Store
	scope       string
}

func NewLeaderboardService(
	scoringService *ScoringService,
	teamRepo fantasy.Repository,
	contestRepo contest.Repository,
	store *cache.Store,
	scope string,
) *LeaderboardService {
	if scope == "" {
		scope = config.LeaderboardScopeGlobal
	}
	return &LeaderboardService{
		scoring:     scoringService,
		teamRepo:    teamRepo,
		contestRepo: contestRepo,
		store:       store,
		scope:       scope,
	}
}

func (s *LeaderboardService) Leaderboard(ctx context.Context, query LeaderboardQuery) ([]scoring.LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	query.ContestID = strings.TrimSpace(query.ContestID)
	if s.scope == config.LeaderboardScopePerContest && query.ContestID == "" {
		return nil, fmt.Errorf("%w: contest_id is required for per-contest leaderboards", ErrInvalidInput)
	}

	if s.store == nil {
		return s.compute(ctx, query)
	}

	key := cache.Key("leaderboard", "scope="+s.scope, "contest="+query.ContestID)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.compute(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	entries, ok := value.([]scoring.LeaderboardEntry)
	if !ok {
		return nil, fmt.Errorf("unexpected cached leaderboard type %T", value)
	}
	return entries, nil
}

// Invalidate drops all cached standings, used after bulk ingestion.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.store != nil {
		s.store.Purge(ctx)
	}
}

func (s *LeaderboardService) compute(ctx context.Context, query LeaderboardQuery) ([]scoring.LeaderboardEntry, error) {
	teams, err := s.selectTeams(ctx, query)
	if err != nil {
		return nil, err
	}

	totalsByUser := make(map[string]float64)
	for _, team := range teams {
		score, err := s.scoring.scoreTeam(ctx, team)
		if err != nil {
			// Teams whose match data is still partial stay off the
			// board rather than ranking with a misleading total.
			if errors.Is(err, scoring.ErrIncompleteScores) {
				continue
			}
			return nil, fmt.Errorf("score team %s: %w", team.ID, err)
		}
		totalsByUser[team.UserID] += score.TotalPoints
	}

	totals := make([]scoring.UserPoints, 0, len(totalsByUser))
	for userID, points := range totalsByUser {
		totals = append(totals, scoring.UserPoints{UserID: userID, TotalPoints: points})
	}

	return scoring.Rank(totals), nil
}

func (s *LeaderboardService) selectTeams(ctx context.Context, query LeaderboardQuery) ([]fantasy.Team, error) {
	if s.scope == config.LeaderboardScopeGlobal {
		teams, err := s.teamRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		return teams, nil
	}

	if _, exists, err := s.contestRepo.GetByID(ctx, query.ContestID); err != nil {
		return nil, fmt.Errorf("get contest by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: contest not found", ErrNotFound)
	}

	entries, err := s.contestRepo.ListEntriesByContest(ctx, query.ContestID)
	if err != nil {
		return nil, fmt.Errorf("list contest entries: %w", err)
	}

	teams := make([]fantasy.Team, 0, len(entries))
	for _, entry := range entries {
		team, exists, err := s.teamRepo.GetByID(ctx, entry.TeamID)
		if err != nil {
			return nil, fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			continue
		}
		teams = append(teams, team)
	}
	return teams, nil
}
