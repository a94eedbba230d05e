package avatars

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound means the user has no stored avatar.
var ErrNotFound = errors.New("avatar not found")

// Avatar records the current profile image for one user. Uploading a
// new image replaces the record and deletes the old file.
type Avatar struct {
	UserID      string    `json:"userId"`
	FileKey     string    `json:"fileKey"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Repo persists the one-avatar-per-user mapping.
type Repo interface {
	// Upsert stores the avatar and returns the previous file key, ""
	// when there was none.
	Upsert(ctx context.Context, a *Avatar) (string, error)
	GetByUser(ctx context.Context, userID string) (*Avatar, error)
}
