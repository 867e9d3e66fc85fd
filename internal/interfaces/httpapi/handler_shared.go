package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/kemetion/fantasy-cricket/internal/domain/contest"
	"github.com/kemetion/fantasy-cricket/internal/domain/fantasy"
	"github.com/kemetion/fantasy-cricket/internal/domain/match"
	"github.com/kemetion/fantasy-cricket/internal/domain/scoring"
	"github.com/kemetion/fantasy-cricket/internal/domain/user"
	"github.com/kemetion/fantasy-cricket/internal/usecase"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createTeamRequest struct {
	MatchID       string   `json:"match_id" validate:"required"`
	Name          string   `json:"name" validate:"required,max=100"`
	PlayerIDs     []string `json:"player_ids" validate:"required,len=11,dive,required"`
	CaptainID     string   `json:"captain_id" validate:"required"`
	ViceCaptainID string   `json:"vice_captain_id" validate:"required"`
}

type joinContestRequest struct {
	ContestID string `json:"contest_id" validate:"required"`
	TeamID    string `json:"team_id" validate:"required"`
}

type ingestPerformanceRequest struct {
	PlayerID   string             `json:"player_id" validate:"required"`
	Statistics map[string]float64 `json:"statistics" validate:"required"`
}

type authResponseDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type matchDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Venue    string `json:"venue,omitempty"`
	Format   string `json:"format"`
	TeamHome string `json:"team_home"`
	TeamAway string `json:"team_away"`
	StartsAt string `json:"starts_at"`
	Status   string `json:"status"`
	Locked   bool   `json:"locked"`
}

type teamDTO struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	MatchID       string   `json:"match_id"`
	Name          string   `json:"name"`
	PlayerIDs     []string `json:"player_ids"`
	CaptainID     string   `json:"captain_id"`
	ViceCaptainID string   `json:"vice_captain_id"`
	CreatedAt     string   `json:"created_at"`
}

type contestDTO struct {
	ID         string `json:"id"`
	MatchID    string `json:"match_id"`
	Name       string `json:"name"`
	EntryFee   int64  `json:"entry_fee"`
	PrizePool  int64  `json:"prize_pool"`
	MaxEntries int    `json:"max_entries"`
	CreatedAt  string `json:"created_at"`
}

type contestEntryDTO struct {
	ContestID string `json:"contest_id"`
	TeamID    string `json:"team_id"`
	UserID    string `json:"user_id"`
	JoinedAt  string `json:"joined_at"`
}

type playerScoreDTO struct {
	MatchID     string             `json:"match_id"`
	PlayerID    string             `json:"player_id"`
	TotalPoints float64            `json:"total_points"`
	Breakdown   []breakdownItemDTO `json:"breakdown"`
}

type breakdownItemDTO struct {
	EventType string  `json:"event_type"`
	Points    float64 `json:"points"`
}

type teamScoreDTO struct {
	TeamID      string  `json:"team_id"`
	TotalPoints float64 `json:"total_points"`
}

type leaderboardEntryDTO struct {
	UserID      string  `json:"user_id"`
	Rank        int     `json:"rank"`
	TotalPoints float64 `json:"total_points"`
}

type scoringRuleDTO struct {
	EventType     string   `json:"event_type"`
	Stat          string   `json:"stat"`
	PointsPerUnit float64  `json:"points_per_unit"`
	Cap           *float64 `json:"cap,omitempty"`
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func userToDTO(record user.User) userDTO {
	return userDTO{
		ID:        record.ID,
		Username:  record.Username,
		Email:     record.Email,
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func matchToDTO(record match.Match, now time.Time) matchDTO {
	return matchDTO{
		ID:       record.ID,
		Name:     record.Name,
		Venue:    record.Venue,
		Format:   record.Format,
		TeamHome: record.TeamHome,
		TeamAway: record.TeamAway,
		StartsAt: record.StartsAt.UTC().Format(time.RFC3339),
		Status:   record.Status,
		Locked:   record.Locked(now),
	}
}

func teamToDTO(record fantasy.Team) teamDTO {
	return teamDTO{
		ID:            record.ID,
		UserID:        record.UserID,
		MatchID:       record.MatchID,
		Name:          record.Name,
		PlayerIDs:     record.PlayerIDs,
		CaptainID:     record.CaptainID,
		ViceCaptainID: record.ViceCaptainID,
		CreatedAt:     record.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func contestToDTO(record contest.Contest) contestDTO {
	return contestDTO{
		ID:         record.ID,
		MatchID:    record.MatchID,
		Name:       record.Name,
		EntryFee:   record.EntryFee,
		PrizePool:  record.PrizePool,
		MaxEntries: record.MaxEntries,
		CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func contestEntryToDTO(record contest.Entry) contestEntryDTO {
	return contestEntryDTO{
		ContestID: record.ContestID,
		TeamID:    record.TeamID,
		UserID:    record.UserID,
		JoinedAt:  record.JoinedAt.UTC().Format(time.RFC3339),
	}
}

func playerScoreToDTO(score scoring.PlayerScore) playerScoreDTO {
	breakdown := make([]breakdownItemDTO, 0, len(score.Breakdown))
	for _, item := range score.Breakdown {
		breakdown = append(breakdown, breakdownItemDTO{
			EventType: string(item.EventType),
			Points:    item.Points,
		})
	}
	return playerScoreDTO{
		MatchID:     score.MatchID,
		PlayerID:    score.PlayerID,
		TotalPoints: score.TotalPoints,
		Breakdown:   breakdown,
	}
}

func leaderboardToDTO(entries []scoring.LeaderboardEntry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, leaderboardEntryDTO{
			UserID:      entry.UserID,
			Rank:        entry.Rank,
			TotalPoints: entry.TotalPoints,
		})
	}
	return out
}

func scoringRuleToDTO(rule scoring.Rule) scoringRuleDTO {
	return scoringRuleDTO{
		EventType:     string(rule.EventType),
		Stat:          rule.Stat,
		PointsPerUnit: rule.PointsPerUnit,
		Cap:           rule.Cap,
	}
}
