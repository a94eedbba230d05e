package avatars

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo is the Postgres implementation of Repo.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

func (r *PGRepo) Upsert(ctx context.Context, a *Avatar) (string, error) {
	var prev sql.NullString
	err := r.DB.QueryRowContext(ctx, `
		SELECT file_key FROM avatars WHERE user_id = $1`,
		a.UserID,
	).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("load previous avatar: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO avatars (user_id, file_key, content_type, size_bytes, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET file_key = EXCLUDED.file_key,
		    content_type = EXCLUDED.content_type,
		    size_bytes = EXCLUDED.size_bytes,
		    updated_at = EXCLUDED.updated_at`,
		a.UserID,
		a.FileKey,
		a.ContentType,
		a.SizeBytes,
		a.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("upsert avatar: %w", err)
	}

	if prev.Valid {
		return prev.String, nil
	}
	return "", nil
}

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (*Avatar, error) {
	var a Avatar
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, file_key, content_type, size_bytes, updated_at
		FROM avatars
		WHERE user_id = $1`,
		userID,
	).Scan(&a.UserID, &a.FileKey, &a.ContentType, &a.SizeBytes, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get avatar: %w", err)
	}
	return &a, nil
}
