package kvstore

import (
	"context"
	"log/slog"
	"sync"
)

// Store is the fail-soft adapter over a Backend. No method returns an error:
// failures are logged, counted, and turned into absent results.
type Store struct {
	backend Backend
	logger  *slog.Logger

	mu       sync.Mutex
	writeErr error
	failures int
}

// New wraps backend. A nil logger uses slog.Default().
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger.With("component", "kvstore"),
	}
}

// Set stores value under key. A failed write is logged and swallowed.
func (s *Store) Set(ctx context.Context, key, value string) {
	if err := s.backend.Set(ctx, key, value); err != nil {
		s.fail("SETITEM", key, err)
		s.recordWrite(err)
	}
}

// Get returns the value for key. A missing key and a failed read both
// yield ("", false).
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.fail("GETITEM", key, err)
		return "", false
	}
	return v, ok
}

// Remove deletes key and reports whether the backend accepted the delete.
func (s *Store) Remove(ctx context.Context, key string) bool {
	if err := s.backend.Remove(ctx, key); err != nil {
		s.fail("REMOVEITEM", key, err)
		s.recordWrite(err)
		return false
	}
	return true
}

// WriteErr returns the most recent failed Set or Remove, or nil. Read
// failures are only logged and counted.
func (s *Store) WriteErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeErr
}

// Failures returns how many operations have failed since New.
func (s *Store) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) fail(op, key string, err error) {
	s.logger.Error(op, "key", key, "error", err)
	s.mu.Lock()
	s.failures++
	s.mu.Unlock()
}

func (s *Store) recordWrite(err error) {
	s.mu.Lock()
	s.writeErr = err
	s.mu.Unlock()
}
