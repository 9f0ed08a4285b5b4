package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"doit/internal/app"
	"doit/internal/config"
	"doit/internal/exitcode"
	"doit/internal/output"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
}

// SetFormat sets the output format (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Print all tasks as JSON or YAML" }
func (c *ExportCmd) Usage() string     { return "doit export [--format json|yaml]" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", output.FormatJSON, "")
	fs.StringVar(&c.format, "f", output.FormatJSON, "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	format := c.format
	if format == "" {
		format = output.FormatJSON
	}
	if format != output.FormatJSON && format != output.FormatYAML {
		fmt.Fprintf(errOut, "error: unknown format: %s\n", format)
		return exitcode.UserError
	}

	if err := output.Export(out, a.Tasks.Tasks(), format); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
