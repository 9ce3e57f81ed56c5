package objstore

import (
	"context"
	"io"
)

// Store is any service that can hold uploaded binary files at
// caller-chosen opaque paths.
type Store interface {
	// Upload stores the content of r at path, overwriting any existing object.
	Upload(ctx context.Context, path string, r io.Reader) error

	// Remove deletes the objects at the given paths. It attempts every path
	// and returns the first error encountered, so callers can treat the
	// whole batch as best-effort.
	Remove(ctx context.Context, paths []string) error
}

var defaultStore Store

// SetDefault installs the process-wide store. Called once at startup and by
// test setup.
func SetDefault(s Store) {
	defaultStore = s
}

// Get returns the process-wide store.
func Get() Store {
	return defaultStore
}
