package object

import (
	"context"
	"io"
)

// Store abstracts where uploaded files live.
type Store interface {
	// Save writes the contents of r under a store-chosen key derived
	// from name and returns that key.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	// Open returns a reader for a previously saved key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes a previously saved key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error
}
