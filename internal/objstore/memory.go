package objstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrUploadRejected is returned by MemoryStore for paths matching its
// configured failure pattern.
var ErrUploadRejected = errors.New("objstore: upload rejected")

// MemoryStore keeps objects in a map. It backs local development runs and
// tests; FailPattern and RemoveErr let tests inject storage failures.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailPattern, when non-empty, makes Upload fail for any path that
	// contains it.
	FailPattern string

	// RemoveErr, when non-nil, is returned by Remove after deleting nothing.
	RemoveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Upload(ctx context.Context, path string, r io.Reader) error {
	if s.FailPattern != "" && strings.Contains(path, s.FailPattern) {
		return ErrUploadRejected
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = content
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, paths []string) error {
	if s.RemoveErr != nil {
		return s.RemoveErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range paths {
		delete(s.objects, p)
	}
	return nil
}

// Has reports whether an object exists at path.
func (s *MemoryStore) Has(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[path]
	return ok
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)
