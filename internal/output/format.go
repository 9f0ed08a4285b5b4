// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"doit/internal/nav"
	"doit/internal/onboarding"
	"doit/internal/todo"
)

// Style colors task lines. Build it with NewStyle.
type Style struct {
	done  *color.Color
	title *color.Color
}

// NewStyle returns a Style; colored=false prints plain text.
func NewStyle(colored bool) Style {
	s := Style{
		done:  color.New(color.FgHiBlack, color.CrossedOut),
		title: color.New(color.Bold),
	}
	for _, c := range []*color.Color{s.done, s.title} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces, box, text)
func FormatTask(w io.Writer, style Style, num int, task todo.Task) {
	box := "[ ]"
	text := normalizeText(task.Text)
	if task.Completed {
		box = "[x]"
		text = style.done.Sprint(text)
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, box, text)
}

// FormatTasks formats every task, numbered from 1.
func FormatTasks(w io.Writer, style Style, tasks todo.List) {
	for i, t := range tasks {
		FormatTask(w, style, i+1, t)
	}
}

// FormatAlert formats a user-facing alert.
func FormatAlert(w io.Writer, a nav.Alert) {
	fmt.Fprintf(w, "%s: %s\n", a.Title, a.Message)
}

// FormatOnboarding prints the first-run introduction.
func FormatOnboarding(w io.Writer, style Style) {
	for i, p := range onboarding.Pages {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, style.title.Sprint(p.Title))
		fmt.Fprintln(w, "  "+p.Body)
	}
}

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export writes tasks as an indented JSON array or a YAML sequence.
func Export(w io.Writer, tasks todo.List, format string) error {
	if tasks == nil {
		tasks = todo.List{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// normalizeText normalizes task text for a single display line.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
