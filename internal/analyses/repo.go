package analyses

import "context"

// DefaultListLimit caps list responses at the 10 most recent analyses.
const DefaultListLimit = 10

// Repo persists analyses. Create is the only write path.
type Repo interface {
	Create(ctx context.Context, a *Analysis) error
	// GetByID fetches regardless of owner. Internal use only; handlers
	// go through GetByIDForUser.
	GetByID(ctx context.Context, id string) (*Analysis, error)
	// GetByIDForUser fetches an analysis visible to userID. Records
	// without an owner stay readable by anyone, a legacy state.
	GetByIDForUser(ctx context.Context, id, userID string) (*Analysis, error)
	// ListByUser returns up to limit analyses newest-first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Analysis, error)
}
