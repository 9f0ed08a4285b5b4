package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"doit/internal/app"
	"doit/internal/config"
	"doit/internal/exitcode"
	"doit/internal/nav"
	"doit/internal/output"
)

func init() {
	Register(&ListCmd{})
	Register(&StartCmd{})
}

// ListCmd implements the list command.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "doit list" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	return listTasks(cfg, a, out)
}

func listTasks(cfg *config.Config, a *app.App, out io.Writer) int {
	tasks := a.Tasks.Tasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks")
		}
		return exitcode.Success
	}
	output.FormatTasks(out, output.NewStyle(cfg.ColorEnabled()), tasks)
	return exitcode.Success
}

// StartCmd is what `doit` with no arguments runs: the task list once
// onboarding is complete, the introduction before that.
type StartCmd struct{}

func (c *StartCmd) Name() string      { return "start" }
func (c *StartCmd) Aliases() []string { return nil }
func (c *StartCmd) Synopsis() string  { return "Show the task list, or the introduction on first run" }
func (c *StartCmd) Usage() string     { return "doit [start]" }
func (c *StartCmd) NeedsStore() bool  { return true }

func (c *StartCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StartCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if !a.Onboarding.IsOnboarded(ctx) {
		a.Router.Navigate(nav.Onboarding)
		printOnboardHint(cfg, out)
		return exitcode.Success
	}
	a.Router.Navigate(nav.Todo)
	return listTasks(cfg, a, out)
}

func printOnboardHint(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "\nRun 'doit onboard' to get started.")
	}
}
