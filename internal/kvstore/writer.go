package kvstore

import (
	"context"
	"log/slog"
	"sync"
)

const writerQueueSize = 64

type writeOp struct {
	key   string
	value string
	done  chan struct{} // non-nil for flush barriers
}

// Writer applies Saves on a single background goroutine so callers never wait
// on storage. Saves are applied in the order they were issued.
type Writer struct {
	store  *Store
	logger *slog.Logger
	ops    chan writeOp
	exited chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewWriter starts the writer goroutine. Close must be called to stop it.
func NewWriter(store *Store, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Writer{
		store:  store,
		logger: logger.With("component", "writer"),
		ops:    make(chan writeOp, writerQueueSize),
		exited: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Writer) run() {
	defer close(w.exited)
	for op := range w.ops {
		if op.done != nil {
			close(op.done)
			continue
		}
		w.store.Set(context.Background(), op.key, op.value)
	}
}

// Save queues value for key. It does not wait for the write unless
// writerQueueSize saves are already pending, in which case it waits for a
// free slot. Saves issued after Close are dropped.
func (w *Writer) Save(key, value string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.logger.Warn("save after close dropped", "key", key)
		return
	}
	w.ops <- writeOp{key: key, value: value}
}

// Flush waits until every Save issued before the call has been applied.
func (w *Writer) Flush(ctx context.Context) error {
	done := make(chan struct{})

	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		return nil
	}
	w.ops <- writeOp{done: done}
	w.mu.RUnlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes pending saves and stops the goroutine. Calling Close twice is safe.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.ops)
	w.mu.Unlock()

	select {
	case <-w.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
