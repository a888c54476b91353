package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

// UserRepository is the degraded-mode user store.
type UserRepository struct {
	mu    sync.RWMutex
	seq   int
	users map[string]domain.User // keyed by id
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := u
	return &clone, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}

	clone := *user
	if clone.ID == "" {
		r.seq++
		clone.ID = "u" + strconv.Itoa(r.seq)
	}
	r.users[clone.ID] = clone

	out := clone
	return &out, nil
}

// CreateBootstrapAdmin creates the first admin. The check and the insert
// happen under one lock, so concurrent bootstrap requests cannot both win.
func (r *UserRepository) CreateBootstrapAdmin(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Role == domain.RoleAdmin {
			return nil, domain.ErrAdminExists
		}
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}

	clone := *user
	clone.Role = domain.RoleAdmin
	if clone.ID == "" {
		r.seq++
		clone.ID = "u" + strconv.Itoa(r.seq)
	}
	r.users[clone.ID] = clone

	out := clone
	return &out, nil
}

func (r *UserRepository) CountAdmins(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, u := range r.users {
		if u.Role == domain.RoleAdmin {
			n++
		}
	}
	return n, nil
}
