package performance

import "context"

type Repository interface {
	// Append stores a new revision. The repository assigns the next
	// revision number for the (matchID, playerID) pair.
	Append(ctx context.Context, record Performance) error

	// GetLatest returns the highest revision for the pair.
	GetLatest(ctx context.Context, matchID, playerID string) (Performance, bool, error)

	// ListLatestByMatch returns the winning revision per player for a match.
	ListLatestByMatch(ctx context.Context, matchID string) ([]Performance, error)
}
