package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"doit/internal/todo"
)

// minIDPrefix is the shortest id prefix accepted as a task reference.
const minIDPrefix = 4

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num      int    // 1-based position, 0 if IDPrefix is set
	IDPrefix string // lowercase id prefix, "" if Num is set
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrAmbiguousRef indicates an id prefix matching more than one task.
var ErrAmbiguousRef = errors.New("ambiguous task reference")

// ErrTaskNotFound indicates a reference that matches no task.
var ErrTaskNotFound = errors.New("task not found")

// ParseTaskRef parses the task reference in args[0] and returns the
// remaining arguments.
//
// Parsing rules:
// 1. All digits → 1-based position in the list
// 2. At least 4 hex digits or dashes → id prefix (case-insensitive)
// 3. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 {
		return TaskRef{}, nil, ErrTaskRefRequired
	}
	ref, rest := args[0], args[1:]

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{Num: num}, rest, nil
	}

	lower := strings.ToLower(ref)
	if len(lower) >= minIDPrefix && isIDChars(lower) {
		return TaskRef{IDPrefix: lower}, rest, nil
	}

	return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", ref)
}

// Resolve finds the task ref points at in tasks.
func (r TaskRef) Resolve(tasks todo.List) (todo.Task, error) {
	if r.IDPrefix == "" {
		if r.Num < 1 || r.Num > len(tasks) {
			return todo.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, r.Num)
		}
		return tasks[r.Num-1], nil
	}

	var match todo.Task
	found := 0
	for _, t := range tasks {
		if strings.HasPrefix(strings.ToLower(t.ID), r.IDPrefix) {
			match = t
			found++
		}
	}
	switch found {
	case 0:
		return todo.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, r.IDPrefix)
	case 1:
		return match, nil
	default:
		return todo.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousRef, r.IDPrefix)
	}
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isIDChars(s string) bool {
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r == '-') {
			return false
		}
	}
	return true
}
