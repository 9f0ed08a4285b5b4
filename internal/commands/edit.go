package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"doit/internal/app"
	"doit/internal/config"
	"doit/internal/exitcode"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Replace the text of a task" }
func (c *EditCmd) Usage() string     { return "doit edit <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	task, rest, code := lookupTask(a, args, errOut)
	if code != exitcode.Success {
		return code
	}

	a.Tasks.BeginEdit(task)
	a.Tasks.SetEditDraft(strings.Join(rest, " "))
	if !a.Tasks.CommitEdit() {
		a.Tasks.CancelEdit()
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
