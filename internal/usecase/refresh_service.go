package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/kemetion/fantasy-cricket/internal/domain/match"
	"github.com/kemetion/fantasy-cricket/internal/domain/performance"
	"github.com/kemetion/fantasy-cricket/internal/domain/player"
	"github.com/kemetion/fantasy-cricket/internal/platform/logging"
)

const defaultRefreshWorkers = 4

// CricketDataProvider is the live feed surface the refresh flow needs.
// The cricketdata client implements it.
type CricketDataProvider interface {
	FetchLiveMatches(ctx context.Context) ([]ExternalMatch, error)
	FetchMatchScorecard(ctx context.Context, matchID string) (ExternalScorecard, error)
}

type ExternalMatch struct {
	ExternalID string
	Name       string
	Venue      string
	Format     string
	TeamHome   string
	TeamAway   string
	StartsAt   time.Time
	Status     string
}

type ExternalScorecard struct {
	MatchID string
	Players []ExternalPlayerPerformance
}

type ExternalPlayerPerformance struct {
	PlayerID   string
	Name       string
	Role       string
	Country    string
	Statistics map[string]float64
}

type RefreshResult struct {
	MatchCount   int   `json:"match_count"`
	PlayerCount  int   `json:"player_count"`
	FailedCount  int   `json:"failed_count"`
	SkippedCount int   `json:"skipped_count"`
	DurationMs   int64 `json:"duration_ms"`
}

// RefreshService pulls live match data from the feed and folds it into the
// local stores, fanning out one worker per live match.
type RefreshService struct {
	provider   CricketDataProvider
	matchRepo  match.Repository
	playerRepo player.Repository
	perfRepo   performance.Repository
	scoring    *ScoringService
	log        *logging.Logger
	workers    int
	now        func() time.Time
}

func NewRefreshService(
	provider CricketDataProvider,
	matchRepo match.Repository,
	playerRepo player.Repository,
	perfRepo performance.Repository,
	scoringService *ScoringService,
	log *logging.Logger,
	workers int,
) *RefreshService {
	if workers < 1 {
		workers = defaultRefreshWorkers
	}
	if log == nil {
		log = logging.Default()
	}
	return &RefreshService{
		provider:   provider,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		perfRepo:   perfRepo,
		scoring:    scoringService,
		log:        log,
		workers:    workers,
		now:        time.Now,
	}
}

// RefreshLive syncs every match the feed reports as live.
func (s *RefreshService) RefreshLive(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshLive")
	defer span.End()

	if s.provider == nil {
		return RefreshResult{}, fmt.Errorf("%w: live feed is not configured", ErrDependencyUnavailable)
	}

	start := s.now()
	liveMatches, err := s.provider.FetchLiveMatches(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("%w: fetch live matches: %v", ErrDependencyUnavailable, err)
	}

	for _, item := range liveMatches {
		if err := s.upsertMatch(ctx, item); err != nil {
			return RefreshResult{}, err
		}
	}

	var playerCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, item := range liveMatches {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			ingested, skipped, refreshErr := s.refreshMatchOnce(ctx, item.ExternalID)
			playerCount.Add(int32(ingested))
			skippedCount.Add(int32(skipped))
			if refreshErr != nil {
				failedCount.Add(1)
				s.log.WarnContext(ctx, "refresh_match_failed",
					"match_id", item.ExternalID,
					"error", refreshErr,
				)
			}
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit refresh task: %w", err)
		}
	}
	workers.Wait()

	result := RefreshResult{
		MatchCount:   len(liveMatches),
		PlayerCount:  int(playerCount.Load()),
		SkippedCount: int(skippedCount.Load()),
		FailedCount:  int(failedCount.Load()),
		DurationMs:   time.Since(start).Milliseconds(),
	}
	s.log.InfoContext(ctx, "refresh_live_done",
		"match_count", result.MatchCount,
		"player_count", result.PlayerCount,
		"skipped_count", result.SkippedCount,
		"failed_count", result.FailedCount,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// RefreshMatch syncs a single match. It satisfies MatchRefresher so the
// scoring path can pull fresh data before serving.
func (s *RefreshService) RefreshMatch(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	if s.provider == nil {
		return nil
	}

	_, _, err := s.refreshMatchOnce(ctx, matchID)
	return err
}

func (s *RefreshService) refreshMatchOnce(ctx context.Context, matchID string) (ingested, skipped int, err error) {
	scorecard, err := s.provider.FetchMatchScorecard(ctx, matchID)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: fetch scorecard for %s: %v", ErrDependencyUnavailable, matchID, err)
	}

	for _, entry := range scorecard.Players {
		if err := s.upsertPlayer(ctx, entry); err != nil {
			return ingested, skipped, err
		}

		latest, exists, err := s.perfRepo.GetLatest(ctx, matchID, entry.PlayerID)
		if err != nil {
			return ingested, skipped, fmt.Errorf("get latest performance: %w", err)
		}
		if exists && statsEqual(latest.Statistics, entry.Statistics) {
			skipped++
			continue
		}

		if _, err := s.scoring.IngestPerformance(ctx, IngestPerformanceInput{
			MatchID:    matchID,
			PlayerID:   entry.PlayerID,
			Statistics: entry.Statistics,
		}); err != nil {
			return ingested, skipped, err
		}
		ingested++
	}

	return ingested, skipped, nil
}

func (s *RefreshService) upsertMatch(ctx context.Context, item ExternalMatch) error {
	record := match.Match{
		ID:       item.ExternalID,
		Name:     item.Name,
		Venue:    item.Venue,
		Format:   item.Format,
		TeamHome: item.TeamHome,
		TeamAway: item.TeamAway,
		StartsAt: item.StartsAt,
		Status:   match.NormalizeStatus(item.Status),
	}
	if err := s.matchRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("upsert match %s: %w", item.ExternalID, err)
	}
	return nil
}

func (s *RefreshService) upsertPlayer(ctx context.Context, entry ExternalPlayerPerformance) error {
	record := player.Player{
		ID:      entry.PlayerID,
		Name:    entry.Name,
		Role:    player.Role(entry.Role),
		Country: entry.Country,
	}
	if err := s.playerRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("upsert player %s: %w", entry.PlayerID, err)
	}
	return nil
}

func statsEqual(a, b map[string]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for stat, value := range a {
		other, ok := b[stat]
		if !ok || other != value {
			return false
		}
	}
	return true
}
