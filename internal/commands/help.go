package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"doit/internal/app"
	"doit/internal/config"
	"doit/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "doit help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, HelpText)
	return exitcode.Success
}

// HelpText is printed by `doit help` and on usage errors.
const HelpText = `Usage:
  doit                                 Show the task list, or the introduction on first run
  doit list [common flags]             List tasks
  doit add [common flags] <text...>    Add a task
  doit new [common flags] <text...>
  doit done [common flags] <ref>       Toggle a task between open and done
  doit edit [common flags] <ref> <text...>
  doit rm [common flags] <ref>         Delete a task
  doit export [common flags] [--format json|yaml]
  doit onboard [common flags]          Show the introduction and finish first-run setup
  doit reset [common flags]            Forget onboarding
  doit ui [common flags]               Open the interactive screen
  doit help
  doit version

A <ref> is a task number from 'doit list' or a prefix of its id
(at least 4 characters).

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
  --no-color       Disable colored output
`
