// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sort"
	"sync"
)

// FakeBackend is an in-memory kvstore.Backend with error injection and a
// record of every write, for testing.
type FakeBackend struct {
	mu     sync.Mutex
	data   map[string]string
	writes []Write
	closed bool

	// Error injection for testing
	GetErr    error
	SetErr    error
	RemoveErr error
	CloseErr  error
}

// Write records one Set call.
type Write struct {
	Key   string
	Value string
}

// NewFakeBackend creates an empty FakeBackend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{data: make(map[string]string)}
}

// Seed stores a value without recording it as a write.
func (f *FakeBackend) Seed(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

// Value returns the stored value for key.
func (f *FakeBackend) Value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

// Keys returns the stored keys, sorted.
func (f *FakeBackend) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Writes returns every successful Set in the order applied.
func (f *FakeBackend) Writes() []Write {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Write, len(f.writes))
	copy(out, f.writes)
	return out
}

// Closed reports whether Close was called.
func (f *FakeBackend) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Get implements kvstore.Backend.
func (f *FakeBackend) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

// Set implements kvstore.Backend.
func (f *FakeBackend) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetErr != nil {
		return f.SetErr
	}
	f.data[key] = value
	f.writes = append(f.writes, Write{Key: key, Value: value})
	return nil
}

// Remove implements kvstore.Backend.
func (f *FakeBackend) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	delete(f.data, key)
	return nil
}

// Close implements kvstore.Backend.
func (f *FakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.CloseErr
}

// SetFailing changes SetErr under the lock, for use while a writer goroutine runs.
func (f *FakeBackend) SetFailing(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetErr = err
}
