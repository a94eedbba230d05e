package jobs

import (
	"context"
	"errors"
)

// ErrNotFound means no job matches the query.
var ErrNotFound = errors.New("job not found")

// DefaultListLimit caps job listings.
const DefaultListLimit = 20

// Repo persists job postings and recommendations.
type Repo interface {
	Create(ctx context.Context, j *Job) error
	List(ctx context.Context, limit int) ([]Job, error)
}
