package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kemetion/fantasy-cricket/internal/domain/fantasy"
	"github.com/kemetion/fantasy-cricket/internal/domain/match"
	"github.com/kemetion/fantasy-cricket/internal/domain/player"
	"github.com/kemetion/fantasy-cricket/internal/platform/id"
)

type CreateTeamInput struct {
	UserID        string
	MatchID       string
	Name          string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

type TeamService struct {
	teamRepo   fantasy.Repository
	matchRepo  match.Repository
	playerRepo player.Repository
	ids        id.Generator
	now        func() time.Time
}

func NewTeamService(
	teamRepo fantasy.Repository,
	matchRepo match.Repository,
	playerRepo player.Repository,
	ids id.Generator,
) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		ids:        ids,
		now:        time.Now,
	}
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.Name = strings.TrimSpace(input.Name)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.ViceCaptainID = strings.TrimSpace(input.ViceCaptainID)

	if input.UserID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if input.MatchID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return fantasy.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	record, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return fantasy.Team{}, fmt.Errorf("%w: match not found", ErrNotFound)
	}
	if record.Locked(s.now().UTC()) {
		return fantasy.Team{}, fmt.Errorf("%w: match has started, team selection is locked", ErrInvalidInput)
	}

	teamID, err := s.ids.NewID()
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	team := fantasy.Team{
		ID:            teamID,
		UserID:        input.UserID,
		MatchID:       input.MatchID,
		Name:          input.Name,
		PlayerIDs:     append([]string(nil), input.PlayerIDs...),
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
		CreatedAt:     s.now().UTC(),
	}
	if err := fantasy.ValidateComposition(team); err != nil {
		return fantasy.Team{}, err
	}

	known, err := s.playerRepo.ListByIDs(ctx, team.PlayerIDs)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("list players by ids: %w", err)
	}
	if len(known) != len(team.PlayerIDs) {
		knownSet := make(map[string]struct{}, len(known))
		for _, p := range known {
			knownSet[p.ID] = struct{}{}
		}
		for _, playerID := range team.PlayerIDs {
			if _, ok := knownSet[playerID]; !ok {
				return fantasy.Team{}, fmt.Errorf("%w: player %s not found", ErrNotFound, playerID)
			}
		}
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return fantasy.Team{}, fmt.Errorf("create team: %w", err)
	}

	return team, nil
}

func (s *TeamService) GetByID(ctx context.Context, teamID string) (fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetByID")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fantasy.Team{}, fmt.Errorf("%w: team not found", ErrNotFound)
	}

	return team, nil
}

func (s *TeamService) ListByUser(ctx context.Context, userID string) ([]fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListByUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams by user: %w", err)
	}

	return teams, nil
}
