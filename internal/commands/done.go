package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"doit/internal/app"
	"doit/internal/config"
	"doit/internal/exitcode"
	"doit/internal/todo"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. Running it on a completed task
// marks it open again.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed, or open again" }
func (c *DoneCmd) Usage() string     { return "doit done <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	task, _, code := lookupTask(a, args, errOut)
	if code != exitcode.Success {
		return code
	}

	a.Tasks.Toggle(task.ID)

	if !cfg.Quiet {
		if task.Completed {
			fmt.Fprintln(out, "ok (reopened)")
		} else {
			fmt.Fprintln(out, "ok")
		}
	}
	return exitcode.Success
}

// lookupTask parses the reference in args and resolves it against the
// current list. Errors are printed to errOut.
func lookupTask(a *app.App, args []string, errOut io.Writer) (todo.Task, []string, int) {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return todo.Task{}, nil, exitcode.UserError
	}

	task, err := ref.Resolve(a.Tasks.Tasks())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return todo.Task{}, nil, exitcode.UserError
	}
	return task, rest, exitcode.Success
}
