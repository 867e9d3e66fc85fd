package player

import "context"

type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	ListByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	ListAll(ctx context.Context) ([]Player, error)
	Upsert(ctx context.Context, record Player) error
}
