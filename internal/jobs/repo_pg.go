package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (r *PGRepo) Create(ctx context.Context, j *Job) error {
	skillsJSON, err := json.Marshal(j.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO jobs (id, title, company, location, description, skills, url, posted_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		j.ID,
		j.Title,
		j.Company,
		nullIfEmpty(j.Location),
		nullIfEmpty(j.Description),
		skillsJSON,
		nullIfEmpty(j.URL),
		j.PostedAt,
		j.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *PGRepo) List(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, company, location, description, skills, url, posted_at, created_at
		FROM jobs
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var (
			j          Job
			location   sql.NullString
			desc       sql.NullString
			url        sql.NullString
			postedAt   sql.NullTime
			skillsJSON []byte
		)
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &location, &desc, &skillsJSON, &url, &postedAt, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		if location.Valid {
			j.Location = location.String
		}
		if desc.Valid {
			j.Description = desc.String
		}
		if url.Valid {
			j.URL = url.String
		}
		if postedAt.Valid {
			t := postedAt.Time
			j.PostedAt = &t
		}
		if err := json.Unmarshal(skillsJSON, &j.Skills); err != nil {
			return nil, fmt.Errorf("unmarshal skills: %w", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return out, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
