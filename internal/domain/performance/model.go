package performance

import "time"

// Performance is one revision of a player's raw statistics for a match.
// Revisions are append-only while a match progresses; the highest revision
// per (matchID, playerID) wins. Rows are never deleted while any fantasy
// team still references the owning match.
type Performance struct {
	MatchID    string
	PlayerID   string
	Revision   int
	Statistics map[string]float64
	RecordedAt time.Time
}
