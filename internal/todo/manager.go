package todo

import (
	"context"
	"errors"
	"log/slog"

	"doit/internal/nav"
)

// ErrEmptyText is returned by Add when the text is blank.
var ErrEmptyText = errors.New("todo cannot be empty")

// Alert shown when an empty task is submitted.
const (
	EmptyAlertTitle   = "Error"
	EmptyAlertMessage = "Todo cannot be empty."
)

// Reader reads persisted values. kvstore.Store satisfies it.
type Reader interface {
	Get(ctx context.Context, key string) (string, bool)
}

// Saver accepts a value to persist without waiting for the write.
// kvstore.Writer satisfies it.
type Saver interface {
	Save(key, value string)
}

// Options configures a Manager.
type Options struct {
	Store   Reader
	Saver   Saver
	Alerter nav.Alerter
	Logger  *slog.Logger

	// NewID generates task ids. Defaults to NewID.
	NewID func() string
}

// Manager owns the task list, the new-task draft and the edit state.
// Each mutation updates memory first, then hands the whole list to the
// Saver. A Manager is not safe for concurrent use.
type Manager struct {
	store   Reader
	saver   Saver
	alerter nav.Alerter
	logger  *slog.Logger
	newID   func() string

	tasks     List
	draft     string
	editing   *Task
	editDraft string
}

// NewManager returns a Manager with an empty list. Call Load to hydrate it.
func NewManager(opts Options) *Manager {
	m := &Manager{
		store:   opts.Store,
		saver:   opts.Saver,
		alerter: opts.Alerter,
		logger:  opts.Logger,
		newID:   opts.NewID,
		tasks:   List{},
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With("component", "todo")
	if m.newID == nil {
		m.newID = NewID
	}
	return m
}

// Load replaces the list with the persisted one. A missing or unreadable
// entry leaves the list empty.
func (m *Manager) Load(ctx context.Context) {
	m.tasks = List{}
	if m.store == nil {
		return
	}
	data, ok := m.store.Get(ctx, StorageKey)
	if !ok {
		return
	}
	l, err := Decode(data)
	if err != nil {
		m.logger.Warn("ignoring stored tasks", "error", err)
		return
	}
	m.tasks = l
	m.logger.Debug("tasks loaded", "count", len(l))
}

// Tasks returns a copy of the current list.
func (m *Manager) Tasks() List {
	return m.tasks.Clone()
}

// Draft returns the pending new-task text.
func (m *Manager) Draft() string { return m.draft }

// SetDraft replaces the pending new-task text.
func (m *Manager) SetDraft(text string) { m.draft = text }

// Add appends a new incomplete task. Blank text raises an alert and returns
// ErrEmptyText without changing anything. On success the draft is cleared.
func (m *Manager) Add(text string) (Task, error) {
	if Blank(text) {
		if m.alerter != nil {
			m.alerter.Alert(EmptyAlertTitle, EmptyAlertMessage)
		}
		return Task{}, ErrEmptyText
	}
	t := Task{ID: m.newID(), Text: text}
	m.apply(m.tasks.Append(t))
	m.draft = ""
	return t, nil
}

// SubmitDraft adds the pending draft.
func (m *Manager) SubmitDraft() (Task, error) {
	return m.Add(m.draft)
}

// Toggle flips the completed flag of id. Unknown ids leave the list as is.
func (m *Manager) Toggle(id string) {
	m.apply(m.tasks.Toggle(id))
}

// Remove deletes id. Removing an unknown id leaves the list as is.
func (m *Manager) Remove(id string) {
	m.apply(m.tasks.Delete(id))
}

// BeginEdit opens the edit surface for t with its current text as the draft.
func (m *Manager) BeginEdit(t Task) {
	target := t
	m.editing = &target
	m.editDraft = t.Text
}

// Editing returns the task being edited.
func (m *Manager) Editing() (Task, bool) {
	if m.editing == nil {
		return Task{}, false
	}
	return *m.editing, true
}

// EditDraft returns the pending edit text.
func (m *Manager) EditDraft() string { return m.editDraft }

// SetEditDraft replaces the pending edit text.
func (m *Manager) SetEditDraft(text string) { m.editDraft = text }

// CommitEdit writes the edit draft into the task being edited and closes the
// edit surface. It does nothing and returns false when no edit is open or the
// draft is blank.
func (m *Manager) CommitEdit() bool {
	if m.editing == nil || Blank(m.editDraft) {
		return false
	}
	m.apply(m.tasks.Rename(m.editing.ID, m.editDraft))
	m.CancelEdit()
	return true
}

// CancelEdit closes the edit surface and discards the edit draft.
func (m *Manager) CancelEdit() {
	m.editing = nil
	m.editDraft = ""
}

func (m *Manager) apply(next List) {
	m.tasks = next
	data, err := Encode(next)
	if err != nil {
		m.logger.Error("encoding tasks", "error", err)
		return
	}
	if m.saver != nil {
		m.saver.Save(StorageKey, data)
	}
}
