package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kemetion/fantasy-cricket/internal/domain/fantasy"
	qb "github.com/kemetion/fantasy-cricket/internal/platform/querybuilder"
)

type teamTableModel struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	MatchID       string    `db:"match_id"`
	Name          string    `db:"name"`
	CaptainID     string    `db:"captain_id"`
	ViceCaptainID string    `db:"vice_captain_id"`
	CreatedAt     time.Time `db:"created_at"`
}

var teamSelectColumns = []string{
	"id",
	"user_id",
	"match_id",
	"name",
	"captain_id",
	"vice_captain_id",
	"created_at",
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team fantasy.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create team tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	teamQuery, teamArgs, err := qb.InsertModel("fantasy_teams", teamTableModel{
		ID:            team.ID,
		UserID:        team.UserID,
		MatchID:       team.MatchID,
		Name:          team.Name,
		CaptainID:     team.CaptainID,
		ViceCaptainID: team.ViceCaptainID,
		CreatedAt:     team.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, teamQuery, teamArgs...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	picks := qb.InsertInto("fantasy_team_players").Columns("team_id", "player_id", "slot")
	for slot, playerID := range team.PlayerIDs {
		picks.Values(team.ID, playerID, slot+1)
	}
	picksQuery, picksArgs, err := picks.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, picksQuery, picksArgs...); err != nil {
		return fmt.Errorf("insert team players: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create team tx: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (fantasy.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("fantasy_teams").
		Where(qb.Eq("id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return fantasy.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Team{}, false, nil
		}
		return fantasy.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	teams, err := r.attachPlayers(ctx, []teamTableModel{row})
	if err != nil {
		return fantasy.Team{}, false, err
	}
	return teams[0], true, nil
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID string) ([]fantasy.Team, error) {
	return r.list(ctx, qb.Eq("user_id", userID))
}

func (r *TeamRepository) ListByMatch(ctx context.Context, matchID string) ([]fantasy.Team, error) {
	return r.list(ctx, qb.Eq("match_id", matchID))
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]fantasy.Team, error) {
	return r.list(ctx)
}

func (r *TeamRepository) list(ctx context.Context, conditions ...qb.Condition) ([]fantasy.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("fantasy_teams").
		Where(conditions...).
		OrderBy("created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	return r.attachPlayers(ctx, rows)
}

func (r *TeamRepository) attachPlayers(ctx context.Context, rows []teamTableModel) ([]fantasy.Team, error) {
	if len(rows) == 0 {
		return []fantasy.Team{}, nil
	}

	teamIDs := make([]any, 0, len(rows))
	for _, row := range rows {
		teamIDs = append(teamIDs, row.ID)
	}

	query, args, err := qb.Select("team_id", "player_id", "slot").From("fantasy_team_players").
		Where(qb.In("team_id", teamIDs)).
		OrderBy("team_id", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team players query: %w", err)
	}

	var pickRows []struct {
		TeamID   string `db:"team_id"`
		PlayerID string `db:"player_id"`
		Slot     int    `db:"slot"`
	}
	if err := r.db.SelectContext(ctx, &pickRows, query, args...); err != nil {
		return nil, fmt.Errorf("select team players: %w", err)
	}

	playersByTeam := make(map[string][]string, len(rows))
	for _, pick := range pickRows {
		playersByTeam[pick.TeamID] = append(playersByTeam[pick.TeamID], pick.PlayerID)
	}

	out := make([]fantasy.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, fantasy.Team{
			ID:            row.ID,
			UserID:        row.UserID,
			MatchID:       row.MatchID,
			Name:          row.Name,
			PlayerIDs:     playersByTeam[row.ID],
			CaptainID:     row.CaptainID,
			ViceCaptainID: row.ViceCaptainID,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}
