package match

import (
	"strings"
	"time"
)

// Match is one cricket fixture between two sides.
type Match struct {
	ID       string
	Name     string
	Venue    string
	Format   string
	TeamHome string
	TeamAway string
	StartsAt time.Time
	Status   string
}

// Locked reports whether team submissions for this match are closed. The
// lock flips when the first ball is due; the scoring core consumes this as
// a plain boolean and does not enforce it itself.
func (m Match) Locked(now time.Time) bool {
	return !m.StartsAt.IsZero() && !now.Before(m.StartsAt)
}

func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "finished", "completed", "result":
		return true
	default:
		return false
	}
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "live", "in_progress", "innings break":
		return true
	default:
		return false
	}
}
