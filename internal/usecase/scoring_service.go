package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kemetion/fantasy-cricket/internal/domain/fantasy"
	"github.com/kemetion/fantasy-cricket/internal/domain/match"
	"github.com/kemetion/fantasy-cricket/internal/domain/performance"
	"github.com/kemetion/fantasy-cricket/internal/domain/player"
	"github.com/kemetion/fantasy-cricket/internal/domain/scoring"
	"github.com/kemetion/fantasy-cricket/internal/platform/resilience"
)

const defaultScoreEnsureInterval = 30 * time.Second

type IngestPerformanceInput struct {
	MatchID    string
	PlayerID   string
	Statistics map[string]float64
}

// MatchRefresher pulls fresh performance data for one match before scores
// are served. The live feed client fills this role when enabled.
type MatchRefresher interface {
	RefreshMatch(ctx context.Context, matchID string) error
}

type ScoringService struct {
	rules          *scoring.RuleTable
	matchRepo      match.Repository
	playerRepo     player.Repository
	perfRepo       performance.Repository
	teamRepo       fantasy.Repository
	refresher      MatchRefresher
	now            func() time.Time
	ensureFlight   resilience.SingleFlight
	ensureMu       sync.Mutex
	lastEnsureAt   map[string]time.Time
	ensureInterval time.Duration
}

func NewScoringService(
	rules *scoring.RuleTable,
	matchRepo match.Repository,
	playerRepo player.Repository,
	perfRepo performance.Repository,
	teamRepo fantasy.Repository,
) *ScoringService {
	return &ScoringService{
		rules:          rules,
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		perfRepo:       perfRepo,
		teamRepo:       teamRepo,
		now:            time.Now,
		lastEnsureAt:   make(map[string]time.Time),
		ensureInterval: defaultScoreEnsureInterval,
	}
}

// SetRefresher wires the live-data refresher. Without one, ensure calls
// are no-ops and scores come from whatever is already persisted.
func (s *ScoringService) SetRefresher(refresher MatchRefresher) {
	s.refresher = refresher
}

func (s *ScoringService) SetEnsureInterval(interval time.Duration) {
	if interval > 0 {
		s.ensureInterval = interval
	}
}

// Rules returns the active scoring rules in registration order.
func (s *ScoringService) Rules() []scoring.Rule {
	return s.rules.Rules()
}

// IngestPerformance appends a new statistics revision for a player in a
// match and returns the score computed from it.
func (s *ScoringService) IngestPerformance(ctx context.Context, input IngestPerformanceInput) (scoring.PlayerScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.IngestPerformance")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.MatchID == "" || input.PlayerID == "" {
		return scoring.PlayerScore{}, fmt.Errorf("%w: match_id and player_id are required", ErrInvalidInput)
	}

	if err := s.checkPairKnown(ctx, input.MatchID, input.PlayerID); err != nil {
		return scoring.PlayerScore{}, err
	}

	stats := make(map[string]float64, len(input.Statistics))
	for stat, value := range input.Statistics {
		stats[stat] = value
	}

	record := performance.Performance{
		MatchID:    input.MatchID,
		PlayerID:   input.PlayerID,
		Statistics: stats,
		RecordedAt: s.now().UTC(),
	}
	if err := s.perfRepo.Append(ctx, record); err != nil {
		return scoring.PlayerScore{}, fmt.Errorf("append performance: %w", err)
	}

	return s.rules.Ingest(input.MatchID, input.PlayerID, stats), nil
}

// PlayerScore computes the score for one player in one match from the
// latest stored revision. A known pair with no revisions scores zero.
func (s *ScoringService) PlayerScore(ctx context.Context, matchID, playerID string) (scoring.PlayerScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.PlayerScore")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	playerID = strings.TrimSpace(playerID)
	if matchID == "" || playerID == "" {
		return scoring.PlayerScore{}, fmt.Errorf("%w: match_id and player_id are required", ErrInvalidInput)
	}

	if err := s.checkPairKnown(ctx, matchID, playerID); err != nil {
		return scoring.PlayerScore{}, err
	}

	latest, exists, err := s.perfRepo.GetLatest(ctx, matchID, playerID)
	if err != nil {
		return scoring.PlayerScore{}, fmt.Errorf("get latest performance: %w", err)
	}
	if !exists {
		return s.rules.Ingest(matchID, playerID, nil), nil
	}

	return s.rules.Ingest(matchID, playerID, latest.Statistics), nil
}

// TeamScore computes the aggregate score for a fantasy team, refreshing
// match data first when a refresher is wired.
func (s *ScoringService) TeamScore(ctx context.Context, teamID string) (scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.TeamScore")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return scoring.TeamScore{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return scoring.TeamScore{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return scoring.TeamScore{}, fmt.Errorf("%w: team not found", ErrNotFound)
	}

	if err := s.EnsureMatchUpToDate(ctx, team.MatchID); err != nil {
		return scoring.TeamScore{}, err
	}

	return s.scoreTeam(ctx, team)
}

func (s *ScoringService) scoreTeam(ctx context.Context, team fantasy.Team) (scoring.TeamScore, error) {
	latest, err := s.perfRepo.ListLatestByMatch(ctx, team.MatchID)
	if err != nil {
		return scoring.TeamScore{}, fmt.Errorf("list latest performances: %w", err)
	}

	statsByPlayer := make(map[string]map[string]float64, len(latest))
	for _, record := range latest {
		statsByPlayer[record.PlayerID] = record.Statistics
	}

	scoresByPlayer := make(map[string]scoring.PlayerScore, len(team.PlayerIDs))
	for _, playerID := range team.PlayerIDs {
		stats, ok := statsByPlayer[playerID]
		if !ok {
			// No revision yet: a known player scores zero, an unknown
			// one stays absent so aggregation reports the gap.
			if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
				return scoring.TeamScore{}, fmt.Errorf("get player by id: %w", err)
			} else if !exists {
				continue
			}
			stats = nil
		}
		scoresByPlayer[playerID] = s.rules.Ingest(team.MatchID, playerID, stats)
	}

	return scoring.Aggregate(team.Selection(), scoresByPlayer)
}

// MatchPerformances returns the computed score for every player with a
// stored revision in the match.
func (s *ScoringService) MatchPerformances(ctx context.Context, matchID string) ([]scoring.PlayerScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.MatchPerformances")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	if _, exists, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return nil, fmt.Errorf("get match by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: match not found", scoring.ErrUnknownPlayerOrMatch)
	}

	latest, err := s.perfRepo.ListLatestByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list latest performances: %w", err)
	}

	scores := make([]scoring.PlayerScore, 0, len(latest))
	for _, record := range latest {
		scores = append(scores, s.rules.Ingest(matchID, record.PlayerID, record.Statistics))
	}

	return scores, nil
}

// EnsureMatchUpToDate refreshes match data at most once per ensure
// interval, collapsing concurrent callers onto one refresh.
func (s *ScoringService) EnsureMatchUpToDate(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.EnsureMatchUpToDate")
	defer span.End()

	if s.refresher == nil {
		return nil
	}

	now := s.now().UTC()
	if s.shouldSkipEnsure(matchID, now) {
		return nil
	}

	key := "scoring:ensure:" + matchID
	_, err, _ := s.ensureFlight.Do(key, func() (any, error) {
		runNow := s.now().UTC()
		if s.shouldSkipEnsure(matchID, runNow) {
			return nil, nil
		}

		if runErr := s.refresher.RefreshMatch(ctx, matchID); runErr != nil {
			return nil, runErr
		}
		s.markEnsure(matchID, runNow)
		return nil, nil
	})
	return err
}

func (s *ScoringService) shouldSkipEnsure(matchID string, now time.Time) bool {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()

	last, ok := s.lastEnsureAt[matchID]
	return ok && now.Sub(last) < s.ensureInterval
}

func (s *ScoringService) markEnsure(matchID string, now time.Time) {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	s.lastEnsureAt[matchID] = now
}

func (s *ScoringService) checkPairKnown(ctx context.Context, matchID, playerID string) error {
	if _, exists, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return fmt.Errorf("get match by id: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: match %s", scoring.ErrUnknownPlayerOrMatch, matchID)
	}
	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return fmt.Errorf("get player by id: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: player %s", scoring.ErrUnknownPlayerOrMatch, playerID)
	}
	return nil
}
