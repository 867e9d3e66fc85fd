package fantasy

import (
	"github.com/kemetion/fantasy-cricket/internal/domain/scoring"
)

// ValidateComposition enforces the team invariants at creation time:
// exactly eleven distinct players, captain and vice-captain both selected
// and distinct from each other. Violations surface as
// scoring.ErrInvalidTeamComposition so the boundary maps them uniformly
// whether caught here or defensively at aggregation time.
func ValidateComposition(team Team) error {
	return scoring.ValidateSelection(team.Selection())
}

// Selection projects the team onto the aggregator's input type.
func (t Team) Selection() scoring.TeamSelection {
	return scoring.TeamSelection{
		TeamID:        t.ID,
		PlayerIDs:     t.PlayerIDs,
		CaptainID:     t.CaptainID,
		ViceCaptainID: t.ViceCaptainID,
	}
}
