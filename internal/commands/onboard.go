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
)

func init() {
	Register(&OnboardCmd{})
	Register(&ResetCmd{})
}

// OnboardCmd runs the first-run introduction and records its completion.
type OnboardCmd struct{}

func (c *OnboardCmd) Name() string      { return "onboard" }
func (c *OnboardCmd) Aliases() []string { return nil }
func (c *OnboardCmd) Synopsis() string  { return "Show the introduction and finish first-run setup" }
func (c *OnboardCmd) Usage() string     { return "doit onboard" }
func (c *OnboardCmd) NeedsStore() bool  { return true }

func (c *OnboardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *OnboardCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if a.Onboarding.IsOnboarded(ctx) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already onboarded")
		}
		return exitcode.Success
	}

	a.Router.Navigate(nav.Onboarding)
	a.Onboarding.MarkOnboarded(ctx)
	a.Router.Navigate(nav.Home)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// ResetCmd forgets this device's onboarding state.
type ResetCmd struct{}

func (c *ResetCmd) Name() string      { return "reset" }
func (c *ResetCmd) Aliases() []string { return nil }
func (c *ResetCmd) Synopsis() string  { return "Forget onboarding and show the introduction again" }
func (c *ResetCmd) Usage() string     { return "doit reset" }
func (c *ResetCmd) NeedsStore() bool  { return true }

func (c *ResetCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ResetCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	a.Onboarding.Reset(ctx)
	printOnboardHint(cfg, out)
	return exitcode.Success
}
