package fantasy

import (
	"fmt"
	"time"
)

// Team is a user's submitted selection of eleven players for one match,
// with one captain and one vice-captain. Teams are created once at
// submission time and become immutable after the match's team lock.
type Team struct {
	ID            string
	UserID        string
	MatchID       string
	Name          string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
	CreatedAt     time.Time
}

func (t Team) ValidateBasic() error {
	if t.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if t.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// HasPlayer reports whether the given player is part of the selection.
func (t Team) HasPlayer(playerID string) bool {
	for _, id := range t.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}
