// Package cli parses the command line and runs commands against a session.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"doit/internal/app"
	"doit/internal/commands"
	"doit/internal/config"
	"doit/internal/exitcode"
	"doit/internal/kvstore"
	"doit/internal/logging"
	"doit/internal/nav"
	"doit/internal/output"
)

// closeTimeout bounds how long pending saves may take to drain on exit.
const closeTimeout = 5 * time.Second

// StoreFactory opens the storage backend for cfg.
// Used to inject the backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config) (kvstore.Backend, error)

// OpenStore is the default StoreFactory: the configured driver at the
// configured path.
func OpenStore(ctx context.Context, cfg *config.Config) (kvstore.Backend, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, err
	}
	return kvstore.Open(cfg.Storage.Driver, cfg.DatabasePath())
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  StoreFactory
}

// NewDispatcher creates a new dispatcher with the given registry and store
// factory. A nil factory uses OpenStore.
func NewDispatcher(registry *commands.Registry, factory StoreFactory) *Dispatcher {
	if factory == nil {
		factory = OpenStore
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> the start screen
	if len(args) == 0 {
		return d.dispatch(ctx, "start", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet, debug, noColor bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")
	fs.BoolVar(&noColor, "no-color", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", describeFlagError(err))
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	// color.NoColor is set when stdout is not a terminal or NO_COLOR is present.
	cfg.NoColor = noColor || color.NoColor
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, positionalArgs, out, errOut)
	}

	logOut, closeLog := d.logOutput(cmd, cfg, errOut)
	defer closeLog()
	logger := logging.New(logOut, cfg.LogLevel(), cfg.Logging.Format, cfg.ColorEnabled() && !commands.IsInteractive(cmd))

	backend, err := d.factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: opening store: %s\n", err)
		return exitcode.StorageError
	}

	router := nav.NewRouter(nav.Home)
	if !commands.IsInteractive(cmd) {
		style := output.NewStyle(cfg.ColorEnabled())
		router.OnAlert(func(a nav.Alert) {
			output.FormatAlert(errOut, a)
		})
		router.OnNavigate(func(s nav.Screen) {
			if s == nav.Onboarding && !cfg.Quiet {
				output.FormatOnboarding(out, style)
			}
		})
	}

	a := app.New(ctx, backend, app.Options{Router: router, Logger: logger})
	code := cmd.Run(ctx, cfg, a, positionalArgs, out, errOut)

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()
	if err := a.Close(closeCtx); err != nil {
		fmt.Fprintf(errOut, "warning: %s\n", err)
		if code == exitcode.Success {
			code = exitcode.StorageError
		}
	}
	return code
}

// logOutput picks where logs go. Interactive commands draw on the terminal,
// so their logs are appended to the log file instead, or dropped if it
// cannot be opened.
func (d *Dispatcher) logOutput(cmd commands.Command, cfg *config.Config, errOut io.Writer) (io.Writer, func()) {
	if !commands.IsInteractive(cmd) {
		return errOut, func() {}
	}
	if err := cfg.EnsureDir(); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}

// describeFlagError rewrites flag package errors into the CLI's wording.
func describeFlagError(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "flag needs an argument") {
		flagPart := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + flagPart
	}
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}
	return errStr
}
