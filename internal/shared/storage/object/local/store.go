package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-coach/internal/shared/storage/object"
	"resume-coach/internal/shared/util"
)

// Store keeps uploads in a flat directory on local disk. Keys are the
// generated file names inside Dir.
type Store struct {
	Dir string
}

var _ object.Store = (*Store)(nil)

// New creates the upload directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("local store: dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local store: mkdir %s: %w", dir, err)
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base, err := util.SanitizeFileName(name)
	if err != nil {
		return "", fmt.Errorf("local store: %w", err)
	}

	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
	dst := filepath.Join(s.Dir, key)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("local store: create %s: %w", key, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("local store: write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("local store: close %s: %w", key, err)
	}

	return key, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.Dir, key))
	if err != nil {
		return nil, fmt.Errorf("local store: open %s: %w", key, err)
	}
	return f, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validKey(key); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.Dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("local store: delete %s: %w", key, err)
	}
	return nil
}

// validKey accepts only keys Save could have produced: no separators
// and no traversal. Re-sanitizing here would mangle generated keys.
func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return fmt.Errorf("local store: invalid key %q", key)
	}
	return nil
}
