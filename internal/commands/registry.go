package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps every command name and alias to its Command. The
// dispatcher resolves the first CLI token here; help and the tests walk All.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	primary []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Command),
	}
}

// Register adds c under its name and aliases. Nothing is added when any of
// them is taken, so "rm" and "delete" either both resolve or neither does.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, n := range names {
		if prev, taken := r.byName[n]; taken {
			return fmt.Errorf("command name %q already used by %q", n, prev.Name())
		}
	}

	for _, n := range names {
		r.byName[n] = c
	}
	r.primary = append(r.primary, c.Name())
	return nil
}

// Find resolves a name or alias ("ls" finds list).
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// All returns each command once, ordered by primary name. Aliases are not
// repeated.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := append([]string(nil), r.primary...)
	sort.Strings(names)

	cmds := make([]Command, len(names))
	for i, n := range names {
		cmds[i] = r.byName[n]
	}
	return cmds
}

// DefaultRegistry holds the commands registered by this package's init
// functions.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry. A name clash is a programming error
// and panics at startup.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
