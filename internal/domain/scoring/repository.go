package scoring

import "context"

// Repository loads the persisted scoring configuration. The table is read
// once at start-up; serving never writes rules.
type Repository interface {
	ListRules(ctx context.Context) ([]Rule, error)
}
