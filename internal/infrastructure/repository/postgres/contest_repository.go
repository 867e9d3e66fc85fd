package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kemetion/fantasy-cricket/internal/domain/contest"
	qb "github.com/kemetion/fantasy-cricket/internal/platform/querybuilder"
)

type contestTableModel struct {
	ID         string    `db:"id"`
	MatchID    string    `db:"match_id"`
	Name       string    `db:"name"`
	EntryFee   int64     `db:"entry_fee"`
	PrizePool  int64     `db:"prize_pool"`
	MaxEntries int       `db:"max_entries"`
	CreatedAt  time.Time `db:"created_at"`
}

type contestEntryTableModel struct {
	ContestID string    `db:"contest_id"`
	TeamID    string    `db:"team_id"`
	UserID    string    `db:"user_id"`
	JoinedAt  time.Time `db:"joined_at"`
}

var contestSelectColumns = []string{
	"id",
	"match_id",
	"name",
	"entry_fee",
	"prize_pool",
	"max_entries",
	"created_at",
}

type ContestRepository struct {
	db *sqlx.DB
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	query, args, err := qb.Select(contestSelectColumns...).From("contests").
		Where(qb.Eq("id", contestID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return contest.Contest{}, false, fmt.Errorf("build select contest query: %w", err)
	}

	var row contestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, false, nil
		}
		return contest.Contest{}, false, fmt.Errorf("select contest: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ContestRepository) ListAll(ctx context.Context) ([]contest.Contest, error) {
	query, args, err := qb.Select(contestSelectColumns...).From("contests").
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select contests query: %w", err)
	}

	var rows []contestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select contests: %w", err)
	}

	out := make([]contest.Contest, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ContestRepository) CreateEntry(ctx context.Context, entry contest.Entry) error {
	query, args, err := qb.InsertModel("contest_entries", contestEntryTableModel{
		ContestID: entry.ContestID,
		TeamID:    entry.TeamID,
		UserID:    entry.UserID,
		JoinedAt:  entry.JoinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert contest entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert contest entry: %w", err)
	}
	return nil
}

func (r *ContestRepository) GetEntry(ctx context.Context, contestID, teamID string) (contest.Entry, bool, error) {
	query, args, err := qb.Select("contest_id", "team_id", "user_id", "joined_at").
		From("contest_entries").
		Where(qb.Eq("contest_id", contestID), qb.Eq("team_id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return contest.Entry{}, false, fmt.Errorf("build select contest entry query: %w", err)
	}

	var row contestEntryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contest.Entry{}, false, nil
		}
		return contest.Entry{}, false, fmt.Errorf("select contest entry: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ContestRepository) ListEntriesByContest(ctx context.Context, contestID string) ([]contest.Entry, error) {
	query, args, err := qb.Select("contest_id", "team_id", "user_id", "joined_at").
		From("contest_entries").
		Where(qb.Eq("contest_id", contestID)).
		OrderBy("joined_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select contest entries query: %w", err)
	}

	var rows []contestEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select contest entries: %w", err)
	}

	out := make([]contest.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ContestRepository) CountEntries(ctx context.Context, contestID string) (int, error) {
	query, args, err := qb.Select("COUNT(1) AS entry_count").
		From("contest_entries").
		Where(qb.Eq("contest_id", contestID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count contest entries query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count contest entries: %w", err)
	}
	return count, nil
}

func (m contestTableModel) toDomain() contest.Contest {
	return contest.Contest{
		ID:         m.ID,
		MatchID:    m.MatchID,
		Name:       m.Name,
		EntryFee:   m.EntryFee,
		PrizePool:  m.PrizePool,
		MaxEntries: m.MaxEntries,
		CreatedAt:  m.CreatedAt,
	}
}

func (m contestEntryTableModel) toDomain() contest.Entry {
	return contest.Entry{
		ContestID: m.ContestID,
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		JoinedAt:  m.JoinedAt,
	}
}
