// Package app wires storage, the task manager and the onboarding gate
// into one session.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"doit/internal/kvstore"
	"doit/internal/nav"
	"doit/internal/onboarding"
	"doit/internal/todo"
)

// Options configures New.
type Options struct {
	// Router receives navigation and alerts. Defaults to a Router at nav.Home.
	Router *nav.Router
	Logger *slog.Logger

	// NewID overrides task id generation.
	NewID func() string
}

// App is one session over a backend.
type App struct {
	Store      *kvstore.Store
	Router     *nav.Router
	Tasks      *todo.Manager
	Onboarding *onboarding.Gate

	writer *kvstore.Writer
}

// New builds the session and loads the task list. The caller must Close it.
func New(ctx context.Context, backend kvstore.Backend, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	router := opts.Router
	if router == nil {
		router = nav.NewRouter(nav.Home)
	}

	store := kvstore.New(backend, logger)
	writer := kvstore.NewWriter(store, logger)
	a := &App{
		Store:      store,
		Router:     router,
		Onboarding: onboarding.NewGate(store, router),
		Tasks: todo.NewManager(todo.Options{
			Store:   store,
			Saver:   writer,
			Alerter: router,
			Logger:  logger,
			NewID:   opts.NewID,
		}),
		writer: writer,
	}
	a.Tasks.Load(ctx)
	return a
}

// Flush waits for every queued save to reach the store.
func (a *App) Flush(ctx context.Context) error {
	return a.writer.Flush(ctx)
}

// ErrUnsaved wraps the last storage failure reported by Close.
var ErrUnsaved = errors.New("changes may not have been saved")

// Close drains pending saves and closes the backend. If any storage
// operation failed during the session, the returned error wraps ErrUnsaved.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.writer.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flushing writes: %w", err))
	}
	if err := a.Store.WriteErr(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrUnsaved, err))
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing store: %w", err))
	}
	return errors.Join(errs...)
}
