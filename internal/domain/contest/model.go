package contest

import (
	"fmt"
	"time"
)

// Contest groups fantasy teams competing over one match.
type Contest struct {
	ID         string
	MatchID    string
	Name       string
	EntryFee   int64
	PrizePool  int64
	MaxEntries int
	CreatedAt  time.Time
}

func (c Contest) ValidateBasic() error {
	if c.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("contest name is required")
	}
	if c.MaxEntries < 0 {
		return fmt.Errorf("max entries cannot be negative")
	}
	return nil
}

// Entry records one team joining a contest. A team joins a contest at most
// once.
type Entry struct {
	ContestID string
	TeamID    string
	UserID    string
	JoinedAt  time.Time
}
