package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kemetion/fantasy-cricket/internal/domain/player"
	qb "github.com/kemetion/fantasy-cricket/internal/platform/querybuilder"
)

type playerTableModel struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Country      string    `db:"country"`
	Role         string    `db:"role"`
	BattingStyle string    `db:"batting_style"`
	BowlingStyle string    `db:"bowling_style"`
	UpdatedAt    time.Time `db:"updated_at"`
}

var playerSelectColumns = []string{
	"id",
	"name",
	"country",
	"role",
	"batting_style",
	"bowling_style",
	"updated_at",
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", stringSliceToAny(playerIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) Upsert(ctx context.Context, record player.Player) error {
	query, args, err := qb.InsertModel("players", playerTableModel{
		ID:           record.ID,
		Name:         record.Name,
		Country:      record.Country,
		Role:         string(record.Role),
		BattingStyle: record.BattingStyle,
		BowlingStyle: record.BowlingStyle,
		UpdatedAt:    time.Now().UTC(),
	}, `ON CONFLICT (id) DO UPDATE SET
name = EXCLUDED.name,
country = EXCLUDED.country,
role = EXCLUDED.role,
batting_style = EXCLUDED.batting_style,
bowling_style = EXCLUDED.bowling_style,
updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:           m.ID,
		Name:         m.Name,
		Country:      m.Country,
		Role:         player.Role(m.Role),
		BattingStyle: m.BattingStyle,
		BowlingStyle: m.BowlingStyle,
	}
}
