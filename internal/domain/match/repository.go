package match

import "context"

type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListAll(ctx context.Context) ([]Match, error)
	ListLive(ctx context.Context) ([]Match, error)
	Upsert(ctx context.Context, record Match) error
}
