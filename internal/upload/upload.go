// Package upload persists request payloads to short-lived files.
//
// The analyzer wants a path; HTTP hands us a stream. Save bridges the two
// with scoped acquisition: the caller gets a path plus a cleanup func and is
// expected to defer the cleanup, so the file is removed on every exit path
// whether the analysis succeeded or not.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const defaultMaxBytes = 1 << 20 // 1 MiB

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithDir sets the directory temp files are written under. It is created on
// first use when missing.
func WithDir(dir string) Option {
	return func(s *Store) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithMaxBytes caps the accepted payload size.
func WithMaxBytes(n int64) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// Store writes uploads to uuid-named files under a single directory.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates a Store with configuration options.
func NewStore(opts ...Option) *Store {
	s := &Store{
		dir:      os.TempDir(),
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save streams r to a fresh temp file and returns its path together with a
// cleanup func that removes the file. Cleanup is safe to call more than once.
// Payloads exceeding the configured cap fail with ErrTooLarge and leave
// nothing behind.
func (s *Store) Save(ctx context.Context, r io.Reader) (string, func(), error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("upload dir: %w", err)
	}

	path := filepath.Join(s.dir, "upload-"+uuid.NewString()+".csv")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("create upload file: %w", err)
	}
	cleanup := func() { _ = os.Remove(path) }

	// Read one byte past the cap to distinguish "exactly at" from "over".
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		cleanup()
		return "", nil, fmt.Errorf("write upload: %w", err)
	case closeErr != nil:
		cleanup()
		return "", nil, fmt.Errorf("write upload: %w", closeErr)
	case n > s.maxBytes:
		cleanup()
		return "", nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrTooLarge, s.maxBytes)
	}

	return path, cleanup, nil
}
