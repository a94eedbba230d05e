package avatars

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo for local development and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]Avatar
}

var _ Repo = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]Avatar)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, a *Avatar) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := ""
	if old, ok := r.byUser[a.UserID]; ok {
		prev = old.FileKey
	}
	r.byUser[a.UserID] = *a
	return prev, nil
}

func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (*Avatar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := a
	return &out, nil
}
