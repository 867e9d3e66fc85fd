package contest

import "context"

type Repository interface {
	GetByID(ctx context.Context, contestID string) (Contest, bool, error)
	ListAll(ctx context.Context) ([]Contest, error)

	CreateEntry(ctx context.Context, entry Entry) error
	GetEntry(ctx context.Context, contestID, teamID string) (Entry, bool, error)
	ListEntriesByContest(ctx context.Context, contestID string) ([]Entry, error)
	CountEntries(ctx context.Context, contestID string) (int, error)
}
