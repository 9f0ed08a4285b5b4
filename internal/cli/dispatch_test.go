package cli_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doit/internal/app"
	"doit/internal/cli"
	"doit/internal/commands"
	"doit/internal/config"
	"doit/internal/exitcode"
	"doit/internal/kvstore"
	"doit/internal/onboarding"
	"doit/internal/testutil"
	"doit/internal/todo"
)

// testFactory creates a store factory that returns the given FakeBackend.
func testFactory(backend *testutil.FakeBackend) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config) (kvstore.Backend, error) {
		return backend, nil
	}
}

// run dispatches args with --config pointing at a fresh directory. The flag
// goes right after the command name so positional args stay last.
func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	full := append([]string{args[0], "--config", t.TempDir()}, args[1:]...)
	code = d.Run(context.Background(), full, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeBackend()))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeBackend()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpDoesNotOpenStore(t *testing.T) {
	opened := false
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, cfg *config.Config) (kvstore.Backend, error) {
		opened = true
		return testutil.NewFakeBackend(), nil
	})

	stdout, stderr, code := run(t, dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
	if opened {
		t.Error("help should not open the store")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeBackend()))

	stdout, _, code := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "doit 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestDispatcher_FlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"help", "--unknown"}, "error: unknown flag: -unknown\n"},
		{"missing value", []string{"export", "--format"}, "error: flag needs an argument: -format\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeBackend()))
			var stdout, stderr bytes.Buffer
			code := dispatcher.Run(context.Background(), tt.args, &stdout, &stderr)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stderr.String())
			}
		})
	}
}

func TestDispatcher_AddThenList(t *testing.T) {
	backend := testutil.NewFakeBackend()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(backend))

	if _, stderr, code := run(t, dispatcher, "add", "Buy", "milk"); code != exitcode.Success {
		t.Fatalf("add: exit %d, stderr %q", code, stderr)
	}
	if !backend.Closed() {
		t.Error("expected the store to be closed after the command")
	}

	stdout, _, code := run(t, dispatcher, "ls")
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  [ ] Buy milk\n" {
		t.Errorf("unexpected list output %q", stdout)
	}
}

func TestDispatcher_EmptyAddPrintsAlert(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeBackend()))

	stdout, stderr, code := run(t, dispatcher, "add", " ")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	want := todo.EmptyAlertTitle + ": " + todo.EmptyAlertMessage + "\n"
	if stderr != want {
		t.Errorf("expected %q, got %q", want, stderr)
	}
}

func TestDispatcher_OnboardShowsIntroduction(t *testing.T) {
	backend := testutil.NewFakeBackend()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(backend))

	stdout, _, code := run(t, dispatcher, "onboard")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, p := range onboarding.Pages {
		if !strings.Contains(stdout, p.Title) {
			t.Errorf("expected page %q in output", p.Title)
		}
	}
	if !strings.HasSuffix(stdout, "ok\n") {
		t.Errorf("expected trailing ok, got %q", stdout)
	}
}

func TestDispatcher_QuietSuppressesIntroduction(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.Seed(onboarding.Key, "true")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(backend))

	stdout, _, code := run(t, dispatcher, "reset", "--quiet")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if _, ok := backend.Value(onboarding.Key); ok {
		t.Error("expected onboarded marker removed")
	}
}

func TestDispatcher_OpenFailure(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, cfg *config.Config) (kvstore.Backend, error) {
		return nil, errors.New("disk on fire")
	})

	_, stderr, code := run(t, dispatcher, "list")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stderr != "error: opening store: disk on fire\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FailedWriteIsReported(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.SetErr = errors.New("read-only")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(backend))

	stdout, stderr, code := run(t, dispatcher, "add", "x")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	// The command itself succeeded against the in-memory list.
	if stdout != "ok 1\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "warning: ") || !strings.Contains(stderr, "read-only") {
		t.Errorf("expected a warning naming the failure, got %q", stderr)
	}
}

func TestDispatcher_FailedReadIsNotReported(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.GetErr = errors.New("io error")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(backend))

	stdout, stderr, code := run(t, dispatcher, "list", "--no-color")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if strings.Contains(stderr, "warning:") {
		t.Errorf("a failed read must not warn about unsaved changes, got %q", stderr)
	}
}

// screenCmd stands in for a command that owns the terminal.
type screenCmd struct{}

func (c *screenCmd) Name() string                   { return "screen" }
func (c *screenCmd) Aliases() []string              { return nil }
func (c *screenCmd) Synopsis() string               { return "" }
func (c *screenCmd) Usage() string                  { return "" }
func (c *screenCmd) NeedsStore() bool               { return true }
func (c *screenCmd) Interactive() bool              { return true }
func (c *screenCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *screenCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	a.Tasks.Add("x")
	return exitcode.Success
}

func TestDispatcher_InteractiveLogsToFile(t *testing.T) {
	registry := commands.NewRegistry()
	if err := registry.Register(&screenCmd{}); err != nil {
		t.Fatal(err)
	}
	backend := testutil.NewFakeBackend()
	backend.GetErr = errors.New("io error")
	backend.SetErr = errors.New("disk full")
	dispatcher := cli.NewDispatcher(registry, testFactory(backend))

	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"screen", "--config", dir}, &stdout, &stderr)

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	// Only the exit warning reaches the terminal, after the screen is gone.
	if strings.Contains(stderr.String(), "GETITEM") || strings.Contains(stderr.String(), "SETITEM") {
		t.Errorf("log lines written to the terminal: %q", stderr.String())
	}
	logs, err := os.ReadFile(filepath.Join(dir, config.LogFile))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	for _, want := range []string{"GETITEM", "SETITEM", "disk full"} {
		if !strings.Contains(string(logs), want) {
			t.Errorf("log file missing %q:\n%s", want, logs)
		}
	}
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("[storage]\ndriver = \"floppy\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeBackend()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", dir}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr.String(), "storage.driver") {
		t.Errorf("expected driver error, got %q", stderr.String())
	}
}

func TestDispatcher_SQLiteEndToEnd(t *testing.T) {
	dir := t.TempDir()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)
	ctx := context.Background()

	steps := [][]string{
		{"onboard", "--config", dir, "--quiet"},
		{"add", "--config", dir, "--quiet", "Buy milk"},
		{"done", "--config", dir, "--quiet", "1"},
	}
	for _, args := range steps {
		var stdout, stderr bytes.Buffer
		if code := dispatcher.Run(ctx, args, &stdout, &stderr); code != exitcode.Success {
			t.Fatalf("%v: exit %d, stderr %q", args, code, stderr.String())
		}
	}

	var stdout, stderr bytes.Buffer
	if code := dispatcher.Run(ctx, []string{"list", "--config", dir, "--no-color"}, &stdout, &stderr); code != exitcode.Success {
		t.Fatalf("list: exit %d, stderr %q", code, stderr.String())
	}
	if stdout.String() != "   1  [x] Buy milk\n" {
		t.Errorf("unexpected list output %q", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, config.DatabaseFile)); err != nil {
		t.Errorf("expected database file: %v", err)
	}
}
