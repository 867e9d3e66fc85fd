package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kemetion/fantasy-cricket/internal/domain/match"
	qb "github.com/kemetion/fantasy-cricket/internal/platform/querybuilder"
)

type matchTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Venue     string    `db:"venue"`
	Format    string    `db:"format"`
	TeamHome  string    `db:"team_home"`
	TeamAway  string    `db:"team_away"`
	StartsAt  time.Time `db:"starts_at"`
	Status    string    `db:"status"`
	UpdatedAt time.Time `db:"updated_at"`
}

var matchSelectColumns = []string{
	"id",
	"name",
	"venue",
	"format",
	"team_home",
	"team_away",
	"starts_at",
	"status",
	"updated_at",
}

var liveMatchStatuses = []any{"live", "in_progress", "innings break"}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) ListAll(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		OrderBy("starts_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListLive(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.In("status", liveMatchStatuses)).
		OrderBy("starts_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select live matches query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) Upsert(ctx context.Context, record match.Match) error {
	query, args, err := qb.InsertModel("matches", matchTableModel{
		ID:        record.ID,
		Name:      record.Name,
		Venue:     record.Venue,
		Format:    record.Format,
		TeamHome:  record.TeamHome,
		TeamAway:  record.TeamAway,
		StartsAt:  record.StartsAt,
		Status:    match.NormalizeStatus(record.Status),
		UpdatedAt: time.Now().UTC(),
	}, `ON CONFLICT (id) DO UPDATE SET
name = EXCLUDED.name,
venue = EXCLUDED.venue,
format = EXCLUDED.format,
team_home = EXCLUDED.team_home,
team_away = EXCLUDED.team_away,
starts_at = EXCLUDED.starts_at,
status = EXCLUDED.status,
updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:       m.ID,
		Name:     m.Name,
		Venue:    m.Venue,
		Format:   m.Format,
		TeamHome: m.TeamHome,
		TeamAway: m.TeamAway,
		StartsAt: m.StartsAt,
		Status:   m.Status,
	}
}
