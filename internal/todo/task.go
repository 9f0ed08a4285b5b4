// Package todo holds the task list: the Task record, pure transitions over
// an ordered List, the persisted encoding, and the Manager that owns the
// in-memory list and mirrors every change to storage.
package todo

import (
	"strings"

	"github.com/google/uuid"
)

// Task is one to-do item. The JSON names are the persisted layout.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// NewID returns a random 128-bit identifier.
func NewID() string {
	return uuid.NewString()
}

// Blank reports whether text has no visible characters.
func Blank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// List is an ordered sequence of tasks in insertion order.
// Transitions return a new List and never modify the receiver.
type List []Task

// Index returns the position of the task with id, or -1.
func (l List) Index(id string) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with id.
func (l List) Find(id string) (Task, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return Task{}, false
}

// Append returns l with t added at the end.
func (l List) Append(t Task) List {
	out := make(List, len(l), len(l)+1)
	copy(out, l)
	return append(out, t)
}

// Toggle returns l with the completed flag of id flipped.
func (l List) Toggle(id string) List {
	return l.update(id, func(t *Task) { t.Completed = !t.Completed })
}

// Rename returns l with the text of id replaced.
func (l List) Rename(id, text string) List {
	return l.update(id, func(t *Task) { t.Text = text })
}

// Delete returns l without the task id.
func (l List) Delete(id string) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns a copy of l that shares no storage with it.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Remaining counts tasks not yet completed.
func (l List) Remaining() int {
	n := 0
	for _, t := range l {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (l List) update(id string, fn func(*Task)) List {
	out := l.Clone()
	if i := out.Index(id); i >= 0 {
		fn(&out[i])
	}
	return out
}
