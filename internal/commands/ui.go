package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"doit/internal/app"
	"doit/internal/config"
	"doit/internal/exitcode"
	"doit/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd opens the interactive screen.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Open the interactive screen" }
func (c *UICmd) Usage() string     { return "doit ui" }
func (c *UICmd) NeedsStore() bool  { return true }
func (c *UICmd) Interactive() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if err := ui.Run(ctx, a, os.Stdin, out); err != nil {
		if errors.Is(err, ui.ErrNoTTY) {
			fmt.Fprintln(errOut, "error: ui requires a terminal; use 'doit list' instead")
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
