package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kemetion/fantasy-cricket/internal/domain/contest"
	"github.com/kemetion/fantasy-cricket/internal/domain/fantasy"
	"github.com/kemetion/fantasy-cricket/internal/domain/match"
)

func newTestContestService(maxEntries int) (*ContestService, *stubContestRepo) {
	matchRepo := newStubMatchRepo(match.Match{
		ID:       "m1",
		StartsAt: time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
		Status:   "scheduled",
	})
	teamRepo := newStubTeamRepo(
		fantasy.Team{ID: "t1", UserID: "u1", MatchID: "m1", PlayerIDs: sequentialPlayerIDs(11), CaptainID: "p1", ViceCaptainID: "p2"},
		fantasy.Team{ID: "t2", UserID: "u2", MatchID: "m1", PlayerIDs: sequentialPlayerIDs(11), CaptainID: "p1", ViceCaptainID: "p2"},
		fantasy.Team{ID: "t3", UserID: "u3", MatchID: "other", PlayerIDs: sequentialPlayerIDs(11), CaptainID: "p1", ViceCaptainID: "p2"},
	)
	contestRepo := newStubContestRepo(contest.Contest{ID: "c1", MatchID: "m1", Name: "Mega Contest", MaxEntries: maxEntries})
	svc := NewContestService(contestRepo, teamRepo, matchRepo)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, contestRepo
}

func TestContestServiceJoin(t *testing.T) {
	t.Parallel()

	svc, contestRepo := newTestContestService(0)
	ctx := context.Background()

	entry, err := svc.Join(ctx, JoinContestInput{UserID: "u1", ContestID: "c1", TeamID: "t1"})
	if err != nil {
		t.Fatalf("join contest: %v", err)
	}
	if entry.ContestID != "c1" || entry.TeamID != "t1" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	count, err := contestRepo.CountEntries(ctx, "c1")
	if err != nil || count != 1 {
		t.Fatalf("entries = %d err = %v, want 1", count, err)
	}
}

func TestContestServiceJoinRejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unknown contest", func(t *testing.T) {
		svc, _ := newTestContestService(0)
		if _, err := svc.Join(ctx, JoinContestInput{UserID: "u1", ContestID: "ghost", TeamID: "t1"}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("foreign team", func(t *testing.T) {
		svc, _ := newTestContestService(0)
		if _, err := svc.Join(ctx, JoinContestInput{UserID: "u1", ContestID: "c1", TeamID: "t2"}); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("team for different match", func(t *testing.T) {
		svc, _ := newTestContestService(0)
		if _, err := svc.Join(ctx, JoinContestInput{UserID: "u3", ContestID: "c1", TeamID: "t3"}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("duplicate join", func(t *testing.T) {
		svc, _ := newTestContestService(0)
		if _, err := svc.Join(ctx, JoinContestInput{UserID: "u1", ContestID: "c1", TeamID: "t1"}); err != nil {
			t.Fatalf("first join: %v", err)
		}
		if _, err := svc.Join(ctx, JoinContestInput{UserID: "u1", ContestID: "c1", TeamID: "t1"}); !errors.Is(err, ErrConflict) {
			t.Fatalf("err = %v, want ErrConflict", err)
		}
	})

	t.Run("contest full", func(t *testing.T) {
		svc, _ := newTestContestService(1)
		if _, err := svc.Join(ctx, JoinContestInput{UserID: "u1", ContestID: "c1", TeamID: "t1"}); err != nil {
			t.Fatalf("first join: %v", err)
		}
		if _, err := svc.Join(ctx, JoinContestInput{UserID: "u2", ContestID: "c1", TeamID: "t2"}); !errors.Is(err, ErrConflict) {
			t.Fatalf("err = %v, want ErrConflict", err)
		}
	})

	t.Run("match locked", func(t *testing.T) {
		svc, _ := newTestContestService(0)
		svc.now = func() time.Time { return time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC) }
		if _, err := svc.Join(ctx, JoinContestInput{UserID: "u1", ContestID: "c1", TeamID: "t1"}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v, want ErrInvalidInput", err)
		}
	})
}
