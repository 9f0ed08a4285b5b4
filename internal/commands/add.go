package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"doit/internal/app"
	"doit/internal/config"
	"doit/internal/exitcode"
	"doit/internal/todo"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"new"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "doit add <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	a.Tasks.SetDraft(strings.Join(args, " "))

	// The manager raises the alert for blank text; the dispatcher prints it.
	_, err := a.Tasks.SubmitDraft()
	if errors.Is(err, todo.ErrEmptyText) {
		return exitcode.UserError
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %d\n", len(a.Tasks.Tasks()))
	}
	return exitcode.Success
}
