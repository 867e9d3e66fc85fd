package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kemetion/fantasy-cricket/internal/domain/scoring"
	qb "github.com/kemetion/fantasy-cricket/internal/platform/querybuilder"
)

type scoringRuleTableModel struct {
	EventType     string   `db:"event_type"`
	Stat          string   `db:"stat"`
	PointsPerUnit float64  `db:"points_per_unit"`
	Cap           *float64 `db:"cap"`
	Position      int      `db:"position"`
}

// ScoringRuleRepository loads the rule table in registration order. The
// position column preserves the order rules were registered in, which
// drives breakdown ordering.
type ScoringRuleRepository struct {
	db *sqlx.DB
}

func NewScoringRuleRepository(db *sqlx.DB) *ScoringRuleRepository {
	return &ScoringRuleRepository{db: db}
}

func (r *ScoringRuleRepository) ListRules(ctx context.Context) ([]scoring.Rule, error) {
	query, args, err := qb.Select("event_type", "stat", "points_per_unit", "cap", "position").
		From("scoring_rules").
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select scoring rules query: %w", err)
	}

	var rows []scoringRuleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select scoring rules: %w", err)
	}

	out := make([]scoring.Rule, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.Rule{
			EventType:     scoring.EventType(row.EventType),
			Stat:          row.Stat,
			PointsPerUnit: row.PointsPerUnit,
			Cap:           row.Cap,
		})
	}
	return out, nil
}
