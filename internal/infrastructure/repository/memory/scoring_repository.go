package memory

import (
	"context"

	"github.com/kemetion/fantasy-cricket/internal/domain/scoring"
)

// ScoringRuleRepository serves a fixed rule set. Rules never change after
// construction, so no locking is needed.
type ScoringRuleRepository struct {
	rules []scoring.Rule
}

func NewScoringRuleRepository(rules []scoring.Rule) *ScoringRuleRepository {
	return &ScoringRuleRepository{rules: rules}
}

func (r *ScoringRuleRepository) ListRules(_ context.Context) ([]scoring.Rule, error) {
	out := make([]scoring.Rule, len(r.rules))
	copy(out, r.rules)
	return out, nil
}
