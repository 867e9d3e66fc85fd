package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kemetion/fantasy-cricket/internal/domain/contest"
	"github.com/kemetion/fantasy-cricket/internal/domain/fantasy"
	"github.com/kemetion/fantasy-cricket/internal/domain/match"
)

type JoinContestInput struct {
	UserID    string
	ContestID string
	TeamID    string
}

type ContestService struct {
	contestRepo contest.Repository
	teamRepo    fantasy.Repository
	matchRepo   match.Repository
	now         func() time.Time
}

func NewContestService(
	contestRepo contest.Repository,
	teamRepo fantasy.Repository,
	matchRepo match.Repository,
) *ContestService {
	return &ContestService{
		contestRepo: contestRepo,
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		now:         time.Now,
	}
}

func (s *ContestService) List(ctx context.Context) ([]contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.List")
	defer span.End()

	contests, err := s.contestRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contests: %w", err)
	}

	return contests, nil
}

func (s *ContestService) Join(ctx context.Context, input JoinContestInput) (contest.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.Join")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.ContestID = strings.TrimSpace(input.ContestID)
	input.TeamID = strings.TrimSpace(input.TeamID)

	if input.UserID == "" {
		return contest.Entry{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if input.ContestID == "" || input.TeamID == "" {
		return contest.Entry{}, fmt.Errorf("%w: contest_id and team_id are required", ErrInvalidInput)
	}

	item, exists, err := s.contestRepo.GetByID(ctx, input.ContestID)
	if err != nil {
		return contest.Entry{}, fmt.Errorf("get contest by id: %w", err)
	}
	if !exists {
		return contest.Entry{}, fmt.Errorf("%w: contest not found", ErrNotFound)
	}

	team, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return contest.Entry{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return contest.Entry{}, fmt.Errorf("%w: team not found", ErrNotFound)
	}
	if team.UserID != input.UserID {
		return contest.Entry{}, fmt.Errorf("%w: team belongs to another user", ErrUnauthorized)
	}
	if team.MatchID != item.MatchID {
		return contest.Entry{}, fmt.Errorf("%w: team is for a different match", ErrInvalidInput)
	}

	record, exists, err := s.matchRepo.GetByID(ctx, item.MatchID)
	if err != nil {
		return contest.Entry{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return contest.Entry{}, fmt.Errorf("%w: match not found", ErrNotFound)
	}
	if record.Locked(s.now().UTC()) {
		return contest.Entry{}, fmt.Errorf("%w: match has started, contest is closed", ErrInvalidInput)
	}

	if _, exists, err := s.contestRepo.GetEntry(ctx, input.ContestID, input.TeamID); err != nil {
		return contest.Entry{}, fmt.Errorf("get contest entry: %w", err)
	} else if exists {
		return contest.Entry{}, fmt.Errorf("%w: team already joined this contest", ErrConflict)
	}

	if item.MaxEntries > 0 {
		count, err := s.contestRepo.CountEntries(ctx, input.ContestID)
		if err != nil {
			return contest.Entry{}, fmt.Errorf("count contest entries: %w", err)
		}
		if count >= item.MaxEntries {
			return contest.Entry{}, fmt.Errorf("%w: contest is full", ErrConflict)
		}
	}

	entry := contest.Entry{
		ContestID: input.ContestID,
		TeamID:    input.TeamID,
		UserID:    input.UserID,
		JoinedAt:  s.now().UTC(),
	}
	if err := s.contestRepo.CreateEntry(ctx, entry); err != nil {
		return contest.Entry{}, fmt.Errorf("create contest entry: %w", err)
	}

	return entry, nil
}
