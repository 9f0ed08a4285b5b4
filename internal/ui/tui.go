// Package ui provides the interactive terminal front end.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"doit/internal/app"
	"doit/internal/nav"
	"doit/internal/onboarding"
	"doit/internal/todo"
)

// ErrNoTTY is returned by Run when out is not a terminal.
var ErrNoTTY = errors.New("ui requires a TTY")

// Run starts the interactive program over a and blocks until the user quits.
func Run(ctx context.Context, a *app.App, in io.Reader, out io.Writer) error {
	if !IsTTY(out) {
		return ErrNoTTY
	}
	model := NewModel(ctx, a)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := program.Run()
	return err
}

// IsTTY reports whether w is a character device.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

type focus int

const (
	focusDraft focus = iota
	focusList
)

type styles struct {
	title  lipgloss.Style
	cursor lipgloss.Style
	done   lipgloss.Style
	help   lipgloss.Style
	alert  lipgloss.Style
	modal  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ec9b0")),
		cursor: lipgloss.NewStyle().Foreground(lipgloss.Color("#dcdcaa")),
		done:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666")).Strikethrough(true),
		help:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666")),
		alert:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f44747")),
		modal:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// Model is the bubbletea model. The Router's current screen selects the view.
type Model struct {
	ctx context.Context
	app *app.App

	page   int
	focus  focus
	cursor int
	draft  textinput.Model
	edit   textinput.Model
	alert  *nav.Alert
	styles styles
}

// NewModel builds a Model over a. Alerts raised through a.Router are shown
// in the status line until the next key press.
func NewModel(ctx context.Context, a *app.App) *Model {
	draft := textinput.New()
	draft.Placeholder = "What needs doing?"
	draft.Prompt = "+ "
	draft.SetValue(a.Tasks.Draft())
	draft.Focus()

	edit := textinput.New()
	edit.Prompt = "> "

	m := &Model{
		ctx:    ctx,
		app:    a,
		draft:  draft,
		edit:   edit,
		styles: newStyles(),
	}
	a.Router.OnAlert(func(al nav.Alert) {
		m.alert = &al
	})
	a.Router.OnNavigate(func(s nav.Screen) {
		if s == nav.Onboarding {
			m.page = 0
		}
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	if !m.app.Onboarding.IsOnboarded(m.ctx) {
		m.app.Router.Navigate(nav.Onboarding)
	}
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.alert = nil

	switch m.app.Router.Current() {
	case nav.Onboarding:
		return m.updateOnboarding(key)
	case nav.Todo:
		return m.updateTodo(key)
	default:
		return m.updateHome(key)
	}
}

func (m *Model) updateOnboarding(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		if m.page < len(onboarding.Pages)-1 {
			m.page++
			return m, nil
		}
		m.app.Onboarding.MarkOnboarded(m.ctx)
		m.app.Router.Navigate(nav.Home)
	}
	return m, nil
}

func (m *Model) updateHome(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "t", "enter":
		m.app.Router.Navigate(nav.Todo)
		m.focusDraft()
	case "r":
		m.app.Onboarding.Reset(m.ctx)
	}
	return m, nil
}

func (m *Model) updateTodo(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, editing := m.app.Tasks.Editing(); editing {
		return m.updateEdit(key)
	}

	switch key.String() {
	case "esc":
		m.app.Router.Back()
		return m, nil
	case "tab":
		if m.focus == focusDraft {
			m.focusList()
		} else {
			m.focusDraft()
		}
		return m, nil
	}

	if m.focus == focusDraft {
		if key.String() == "enter" {
			m.app.Tasks.SetDraft(m.draft.Value())
			if _, err := m.app.Tasks.SubmitDraft(); err == nil {
				m.draft.SetValue("")
				m.cursor = len(m.app.Tasks.Tasks()) - 1
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.draft, cmd = m.draft.Update(key)
		m.app.Tasks.SetDraft(m.draft.Value())
		return m, cmd
	}

	tasks := m.app.Tasks.Tasks()
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case "a":
		m.focusDraft()
	case " ", "space":
		if t, ok := m.selected(tasks); ok {
			m.app.Tasks.Toggle(t.ID)
		}
	case "e":
		if t, ok := m.selected(tasks); ok {
			m.app.Tasks.BeginEdit(t)
			m.edit.SetValue(m.app.Tasks.EditDraft())
			m.edit.CursorEnd()
			m.edit.Focus()
		}
	case "d":
		if t, ok := m.selected(tasks); ok {
			m.app.Tasks.Remove(t.ID)
			if m.cursor >= len(tasks)-1 && m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func (m *Model) updateEdit(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.app.Tasks.CancelEdit()
		m.edit.Blur()
		return m, nil
	case "enter":
		m.app.Tasks.SetEditDraft(m.edit.Value())
		if m.app.Tasks.CommitEdit() {
			m.edit.Blur()
		} else {
			m.alert = &nav.Alert{Title: todo.EmptyAlertTitle, Message: todo.EmptyAlertMessage}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(key)
	m.app.Tasks.SetEditDraft(m.edit.Value())
	return m, cmd
}

// updateInputs forwards non-key messages such as cursor blinks.
func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	cmds = append(cmds, cmd)
	m.edit, cmd = m.edit.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) focusDraft() {
	m.focus = focusDraft
	m.draft.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.draft.Blur()
}

func (m *Model) selected(tasks todo.List) (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return todo.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) View() string {
	var b strings.Builder
	switch m.app.Router.Current() {
	case nav.Onboarding:
		m.viewOnboarding(&b)
	case nav.Todo:
		m.viewTodo(&b)
	default:
		m.viewHome(&b)
	}
	if m.alert != nil {
		b.WriteString("\n" + m.styles.alert.Render(fmt.Sprintf("%s: %s", m.alert.Title, m.alert.Message)) + "\n")
	}
	return b.String()
}

func (m *Model) viewOnboarding(b *strings.Builder) {
	p := onboarding.Pages[m.page]
	b.WriteString(m.styles.title.Render(p.Title) + "\n\n")
	b.WriteString(p.Body + "\n\n")
	hint := "enter: next"
	if m.page == len(onboarding.Pages)-1 {
		hint = "enter: get started"
	}
	b.WriteString(m.styles.help.Render(fmt.Sprintf("%d/%d  %s  q: quit", m.page+1, len(onboarding.Pages), hint)) + "\n")
}

func (m *Model) viewHome(b *strings.Builder) {
	tasks := m.app.Tasks.Tasks()
	b.WriteString(m.styles.title.Render("doit") + "\n\n")
	fmt.Fprintf(b, "%d open, %d total\n\n", tasks.Remaining(), len(tasks))
	b.WriteString(m.styles.help.Render("t: tasks  r: replay introduction  q: quit") + "\n")
}

func (m *Model) viewTodo(b *strings.Builder) {
	tasks := m.app.Tasks.Tasks()
	b.WriteString(m.styles.title.Render("Tasks") + "\n\n")
	b.WriteString(m.draft.View() + "\n\n")

	if len(tasks) == 0 {
		b.WriteString(m.styles.help.Render("  nothing yet") + "\n")
	}
	for i, t := range tasks {
		prefix := "  "
		if m.focus == focusList && i == m.cursor {
			prefix = m.styles.cursor.Render("> ")
		}
		box, text := "[ ]", t.Text
		if t.Completed {
			box, text = "[x]", m.styles.done.Render(t.Text)
		}
		fmt.Fprintf(b, "%s%s %s\n", prefix, box, text)
	}

	if _, editing := m.app.Tasks.Editing(); editing {
		b.WriteString("\n" + m.styles.modal.Render("Edit task\n"+m.edit.View()+"\n"+
			m.styles.help.Render("enter: save  esc: cancel")) + "\n")
		return
	}

	help := "enter: add  tab: list  esc: home"
	if m.focus == focusList {
		help = "up/down: move  space: done  e: edit  d: delete  a/tab: add  esc: home  q: quit"
	}
	b.WriteString("\n" + m.styles.help.Render(help) + "\n")
}
