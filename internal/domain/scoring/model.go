package scoring

import "errors"

var (
	ErrUnknownPlayerOrMatch     = errors.New("unknown player or match")
	ErrIncompleteScores         = errors.New("scores missing for one or more players")
	ErrInvalidTeamComposition   = errors.New("invalid team composition")
	ErrDuplicateRuleEventType   = errors.New("duplicate rule event type")
	ErrInvalidRulePointsPerUnit = errors.New("rule points per unit must be non-zero")
)

// EventType identifies one scored performance event.
type EventType string

const (
	EventRun         EventType = "run"
	EventFour        EventType = "four"
	EventSix         EventType = "six"
	EventHalfCentury EventType = "half_century"
	EventCentury     EventType = "century"
	EventDuck        EventType = "duck"
	EventWicket      EventType = "wicket"
	EventMaidenOver  EventType = "maiden_over"
	EventCatch       EventType = "catch"
	EventStumping    EventType = "stumping"
	EventRunOut      EventType = "run_out"
)

// Rule maps one statistic to a point contribution. Stat names the key in a
// performance's statistics map; several rules may read the same stat.
type Rule struct {
	EventType     EventType
	Stat          string
	PointsPerUnit float64
	// Cap bounds positive contributions when set. Negative contributions
	// (penalties) pass through uncapped.
	Cap *float64
}

// PlayerScore is the computed point total for one player in one match.
// It is derived, never stored authoritatively.
type PlayerScore struct {
	MatchID     string
	PlayerID    string
	TotalPoints float64
	Breakdown   []BreakdownItem
}

// BreakdownItem records one rule's contribution, in rule registration order.
type BreakdownItem struct {
	EventType EventType
	Points    float64
}

// TeamScore is the computed point total for one fantasy team.
type TeamScore struct {
	TeamID      string
	TotalPoints float64
}

// UserPoints is a ranker input row.
type UserPoints struct {
	UserID      string
	TotalPoints float64
}

// LeaderboardEntry is a ranked standing row. Equal points share a rank and
// the next distinct total resumes at previousRank + countOfTied.
type LeaderboardEntry struct {
	UserID      string
	Rank        int
	TotalPoints float64
}

const (
	// TeamSize is the exact number of players a fantasy team selects.
	TeamSize = 11

	captainMultiplier     = 2.0
	viceCaptainMultiplier = 1.5
)
