package users

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

func (r *PGRepo) Upsert(ctx context.Context, u *User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, name, picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    picture = EXCLUDED.picture,
		    updated_at = EXCLUDED.updated_at`,
		u.ID,
		u.Email,
		nullIfEmpty(u.Name),
		nullIfEmpty(u.Picture),
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*User, error) {
	var (
		u       User
		name    sql.NullString
		picture sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, name, picture, created_at, updated_at
		FROM users
		WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &name, &picture, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if name.Valid {
		u.Name = name.String
	}
	if picture.Valid {
		u.Picture = picture.String
	}
	return &u, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
