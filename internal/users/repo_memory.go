package users

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo for local development and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]User
}

var _ Repo = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]User)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byID[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	}
	r.byID[u.ID] = *u
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := u
	return &out, nil
}
