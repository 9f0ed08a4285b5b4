// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"doit/internal/app"
	"doit/internal/config"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or writes persisted state.
	// Commands like help and version return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, settings).
	// a is nil if NeedsStore() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int
}

// Interactive is implemented by commands that own the terminal. The
// dispatcher does not print navigation or alerts for them.
type Interactive interface {
	Interactive() bool
}

// IsInteractive reports whether c owns the terminal.
func IsInteractive(c Command) bool {
	i, ok := c.(Interactive)
	return ok && i.Interactive()
}
