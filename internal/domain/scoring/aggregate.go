package scoring

import "fmt"

// TeamSelection is the slice of a fantasy team the aggregator needs. The
// fantasy package owns the full record; keeping the aggregator on its own
// input type keeps this package free of upward imports.
type TeamSelection struct {
	TeamID        string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

// Aggregate sums a team's eleven player scores into a TeamScore, doubling
// the captain's contribution and multiplying the vice-captain's by 1.5.
// Every selected player must have a score entry; a player who did not play
// still requires an explicit zero score. Full precision is retained;
// rounding is a display concern, never applied here.
func Aggregate(team TeamSelection, scoresByPlayer map[string]PlayerScore) (TeamScore, error) {
	if err := ValidateSelection(team); err != nil {
		return TeamScore{}, err
	}

	total := 0.0
	for _, playerID := range team.PlayerIDs {
		score, ok := scoresByPlayer[playerID]
		if !ok {
			return TeamScore{}, fmt.Errorf("%w: player %s", ErrIncompleteScores, playerID)
		}

		contribution := score.TotalPoints
		switch playerID {
		case team.CaptainID:
			contribution *= captainMultiplier
		case team.ViceCaptainID:
			contribution *= viceCaptainMultiplier
		}
		total += contribution
	}

	return TeamScore{TeamID: team.TeamID, TotalPoints: total}, nil
}

// ValidateSelection checks the team invariants: eleven distinct players,
// captain and vice-captain both selected and distinct from each other.
// Team creation rejects violations up front; the aggregator re-checks
// defensively and fails the same way.
func ValidateSelection(team TeamSelection) error {
	if len(team.PlayerIDs) != TeamSize {
		return fmt.Errorf("%w: expected %d players, got %d", ErrInvalidTeamComposition, TeamSize, len(team.PlayerIDs))
	}

	seen := make(map[string]struct{}, len(team.PlayerIDs))
	for _, playerID := range team.PlayerIDs {
		if playerID == "" {
			return fmt.Errorf("%w: empty player id", ErrInvalidTeamComposition)
		}
		if _, dup := seen[playerID]; dup {
			return fmt.Errorf("%w: duplicate player %s", ErrInvalidTeamComposition, playerID)
		}
		seen[playerID] = struct{}{}
	}

	if _, ok := seen[team.CaptainID]; !ok {
		return fmt.Errorf("%w: captain %s is not in the selection", ErrInvalidTeamComposition, team.CaptainID)
	}
	if _, ok := seen[team.ViceCaptainID]; !ok {
		return fmt.Errorf("%w: vice-captain %s is not in the selection", ErrInvalidTeamComposition, team.ViceCaptainID)
	}
	if team.CaptainID == team.ViceCaptainID {
		return fmt.Errorf("%w: captain and vice-captain must differ", ErrInvalidTeamComposition)
	}

	return nil
}
