// Package onboarding persists whether the first-run introduction has been
// completed on this device.
package onboarding

import (
	"context"
	"strconv"

	"doit/internal/nav"
)

// Key is the storage key of the onboarding marker.
const Key = "onboarded"

const marker = "true"

// Storage is the subset of kvstore.Store the gate uses.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string) bool
}

// Gate reads and writes the onboarding marker.
type Gate struct {
	store Storage
	nav   nav.Navigator
}

// NewGate returns a Gate over store that routes through navigator on Reset.
func NewGate(store Storage, navigator nav.Navigator) *Gate {
	return &Gate{store: store, nav: navigator}
}

// MarkOnboarded records that onboarding was completed.
func (g *Gate) MarkOnboarded(ctx context.Context) {
	g.store.Set(ctx, Key, marker)
}

// IsOnboarded reports whether a truthy marker is stored. A missing key, an
// unreadable store and a false-like value all mean "not onboarded".
func (g *Gate) IsOnboarded(ctx context.Context) bool {
	v, ok := g.store.Get(ctx, Key)
	if !ok {
		return false
	}
	return truthy(v)
}

// Reset forgets the onboarding state and sends the user back to onboarding.
func (g *Gate) Reset(ctx context.Context) {
	g.store.Remove(ctx, Key)
	if g.nav != nil {
		g.nav.Navigate(nav.Onboarding)
	}
}

func truthy(v string) bool {
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v != ""
}

// Page is one screen of the first-run introduction.
type Page struct {
	Title string
	Body  string
}

// Pages is the first-run introduction, in order.
var Pages = []Page{
	{Title: "Welcome to doit", Body: "A small list for the things you need to get done."},
	{Title: "Capture", Body: "Add a task the moment you think of it. Tasks stay on this device."},
	{Title: "Finish", Body: "Tick tasks off when they are done, fix a typo with edit, or delete them."},
}
