package memory

import (
	"context"
	"sync"

	"github.com/kemetion/fantasy-cricket/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

func (r *UserRepository) Create(_ context.Context, record user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[record.ID] = record
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.users[userID]
	return record, ok, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.users {
		if record.Email == email {
			return record, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.users {
		if record.Username == username {
			return record, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) ListAll(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.users))
	for _, record := range r.users {
		out = append(out, record)
	}
	return out, nil
}
