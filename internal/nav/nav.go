// Package nav defines the screen-routing and alert collaborators that the
// task manager and onboarding gate call into.
package nav

import "sync"

// Screen names a top-level view.
type Screen string

// Screens.
const (
	Home       Screen = "Home"
	Todo       Screen = "Todo"
	Onboarding Screen = "Onboarding"
)

// Navigator moves the user to a named screen.
type Navigator interface {
	Navigate(screen Screen)
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(title, message string)
}

// Alert is one message shown through an Alerter.
type Alert struct {
	Title   string
	Message string
}

// Router implements Navigator and Alerter. It keeps the current screen and
// history and forwards each event to the registered handlers in order.
type Router struct {
	mu         sync.Mutex
	history    []Screen
	alerts     []Alert
	onNavigate []func(Screen)
	onAlert    []func(Alert)
}

// NewRouter returns a Router positioned at start.
func NewRouter(start Screen) *Router {
	return &Router{history: []Screen{start}}
}

// OnNavigate registers fn to run after every Navigate.
func (r *Router) OnNavigate(fn func(Screen)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onNavigate = append(r.onNavigate, fn)
}

// OnAlert registers fn to run after every Alert.
func (r *Router) OnAlert(fn func(Alert)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onAlert = append(r.onAlert, fn)
}

// Navigate pushes screen onto the history and notifies handlers.
func (r *Router) Navigate(screen Screen) {
	r.mu.Lock()
	r.history = append(r.history, screen)
	handlers := append([]func(Screen){}, r.onNavigate...)
	r.mu.Unlock()

	for _, fn := range handlers {
		fn(screen)
	}
}

// Back pops the current screen. The first screen is never popped.
func (r *Router) Back() Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) > 1 {
		r.history = r.history[:len(r.history)-1]
	}
	return r.history[len(r.history)-1]
}

// Alert records the message and notifies handlers.
func (r *Router) Alert(title, message string) {
	a := Alert{Title: title, Message: message}

	r.mu.Lock()
	r.alerts = append(r.alerts, a)
	handlers := append([]func(Alert){}, r.onAlert...)
	r.mu.Unlock()

	for _, fn := range handlers {
		fn(a)
	}
}

// Current returns the screen on top of the history.
func (r *Router) Current() Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

// History returns every screen visited, oldest first.
func (r *Router) History() []Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Screen(nil), r.history...)
}

// Alerts returns every alert shown, oldest first.
func (r *Router) Alerts() []Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Alert(nil), r.alerts...)
}

// Visits counts how many times screen was navigated to, excluding the start.
func (r *Router) Visits(screen Screen) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.history[1:] {
		if s == screen {
			n++
		}
	}
	return n
}
