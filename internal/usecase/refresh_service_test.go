package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/kemetion/fantasy-cricket/internal/platform/logging"
)

type stubProvider struct {
	matches    []ExternalMatch
	scorecards map[string]ExternalScorecard
}

func (p *stubProvider) FetchLiveMatches(context.Context) ([]ExternalMatch, error) {
	return p.matches, nil
}

func (p *stubProvider) FetchMatchScorecard(_ context.Context, matchID string) (ExternalScorecard, error) {
	return p.scorecards[matchID], nil
}

func newTestRefreshService(t *testing.T, provider CricketDataProvider) (*RefreshService, *ScoringService, *stubPerformanceRepo) {
	t.Helper()

	scoringSvc, perfRepo, _ := newTestScoringService(t)
	svc := NewRefreshService(
		provider,
		scoringSvc.matchRepo.(*stubMatchRepo),
		scoringSvc.playerRepo.(*stubPlayerRepo),
		perfRepo,
		scoringSvc,
		logging.NewNop(),
		2,
	)
	return svc, scoringSvc, perfRepo
}

func TestRefreshLive(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		matches: []ExternalMatch{
			{ExternalID: "m1", Name: "IND vs AUS", Status: "Live", StartsAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
			{ExternalID: "m2", Name: "ENG vs NZ", Status: "Live", StartsAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)},
		},
		scorecards: map[string]ExternalScorecard{
			"m1": {MatchID: "m1", Players: []ExternalPlayerPerformance{
				{PlayerID: "p1", Name: "player p1", Role: "batter", Statistics: map[string]float64{"runs": 45}},
				{PlayerID: "p2", Name: "player p2", Role: "bowler", Statistics: map[string]float64{"wickets": 3}},
			}},
			"m2": {MatchID: "m2", Players: []ExternalPlayerPerformance{
				{PlayerID: "p99", Name: "player p99", Role: "batter", Statistics: map[string]float64{"runs": 12}},
			}},
		},
	}

	svc, scoringSvc, _ := newTestRefreshService(t, provider)
	ctx := context.Background()

	result, err := svc.RefreshLive(ctx)
	if err != nil {
		t.Fatalf("refresh live: %v", err)
	}
	if result.MatchCount != 2 {
		t.Fatalf("match count = %d, want 2", result.MatchCount)
	}
	if result.PlayerCount != 3 {
		t.Fatalf("player count = %d, want 3", result.PlayerCount)
	}
	if result.FailedCount != 0 {
		t.Fatalf("failed count = %d, want 0", result.FailedCount)
	}

	// Matches and the feed-discovered player are persisted.
	score, err := scoringSvc.PlayerScore(ctx, "m2", "p99")
	if err != nil {
		t.Fatalf("player score after refresh: %v", err)
	}
	if score.TotalPoints != 12 {
		t.Fatalf("total = %v, want 12", score.TotalPoints)
	}
}

func TestRefreshSkipsUnchangedStats(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		matches: []ExternalMatch{{ExternalID: "m1", Status: "Live"}},
		scorecards: map[string]ExternalScorecard{
			"m1": {MatchID: "m1", Players: []ExternalPlayerPerformance{
				{PlayerID: "p1", Name: "player p1", Role: "batter", Statistics: map[string]float64{"runs": 45}},
			}},
		},
	}

	svc, _, perfRepo := newTestRefreshService(t, provider)
	ctx := context.Background()

	if _, err := svc.RefreshLive(ctx); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	result, err := svc.RefreshLive(ctx)
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if result.SkippedCount != 1 || result.PlayerCount != 0 {
		t.Fatalf("skipped=%d ingested=%d, want 1/0", result.SkippedCount, result.PlayerCount)
	}

	latest, _, err := perfRepo.GetLatest(ctx, "m1", "p1")
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if latest.Revision != 1 {
		t.Fatalf("revision = %d, want 1 (no duplicate revisions)", latest.Revision)
	}
}

func TestRefreshMatchRequiresProvider(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestRefreshService(t, nil)
	if err := svc.RefreshMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("refresh without provider should be a no-op, got %v", err)
	}
}
