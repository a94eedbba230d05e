package users

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound means no user matches the query.
var ErrNotFound = errors.New("user not found")

// User is an authenticated account. Guests never get a record here.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Picture   string    `json:"picture,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repo persists user accounts.
type Repo interface {
	// Upsert creates the user or refreshes profile fields on repeat
	// sign-in.
	Upsert(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
}
