package fantasy

import "context"

type Repository interface {
	Create(ctx context.Context, team Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Team, error)
	ListByMatch(ctx context.Context, matchID string) ([]Team, error)
	ListAll(ctx context.Context) ([]Team, error)
}
