package scoring

// Ingest converts raw per-player match statistics into a scored result.
// It is pure: the same (rule table, statistics) always produce an identical
// PlayerScore, including breakdown order. Statistics with no matching rule
// are skipped; negative values flow through so penalty stats score as
// negative points.
func (t *RuleTable) Ingest(matchID, playerID string, statistics map[string]float64) PlayerScore {
	score := PlayerScore{
		MatchID:  matchID,
		PlayerID: playerID,
	}

	// Iterate rules in registration order, not map order, so the breakdown
	// is stable across recomputations.
	for _, rule := range t.rules {
		value, ok := statistics[rule.Stat]
		if !ok {
			continue
		}

		points := value * rule.PointsPerUnit
		if rule.Cap != nil && points > *rule.Cap {
			points = *rule.Cap
		}

		score.Breakdown = append(score.Breakdown, BreakdownItem{
			EventType: rule.EventType,
			Points:    points,
		})
		score.TotalPoints += points
	}

	return score
}
