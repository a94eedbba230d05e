package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (r *PGRepo) Create(ctx context.Context, a *Analysis) error {
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO analyses (id, user_id, resume_text, job_description, raw_output, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID,
		a.UserID,
		a.ResumeText,
		nullIfEmpty(a.JobDescription),
		a.RawModelOutput,
		resultJSON,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Analysis, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, resume_text, job_description, raw_output, result, created_at
		FROM analyses
		WHERE id = $1`,
		id,
	)
	return scanAnalysis(row)
}

func (r *PGRepo) GetByIDForUser(ctx context.Context, id, userID string) (*Analysis, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, resume_text, job_description, raw_output, result, created_at
		FROM analyses
		WHERE id = $1 AND (user_id = $2 OR user_id = '')`,
		id,
		userID,
	)
	return scanAnalysis(row)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Analysis, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, resume_text, job_description, raw_output, result, created_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		a, err := scanAnalysisRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row *sql.Row) (*Analysis, error) {
	a, err := scanOne(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func scanAnalysisRows(rows *sql.Rows) (*Analysis, error) {
	return scanOne(rows)
}

func scanOne(s rowScanner) (*Analysis, error) {
	var (
		a          Analysis
		jobDesc    sql.NullString
		resultJSON []byte
	)
	if err := s.Scan(&a.ID, &a.UserID, &a.ResumeText, &jobDesc, &a.RawModelOutput, &resultJSON, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan analysis: %w", err)
	}
	if jobDesc.Valid {
		a.JobDescription = jobDesc.String
	}
	if err := json.Unmarshal(resultJSON, &a.Result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return &a, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
