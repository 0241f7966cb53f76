// internal/notify/notify.go
//
// Package notify delivers transient user-facing messages (toasts).
//
// Notifications are fire-and-forget: Notify has no return value and callers
// never depend on delivery.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
)

// Notifier is a transient message surface.
type Notifier interface {
	Notify(title, description string)
}

// Toast is one delivered notification.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Func adapts a plain function to Notifier.
type Func func(title, description string)

func (f Func) Notify(title, description string) { f(title, description) }

// Log writes every toast to the global zerolog logger at info level.
type Log struct{}

func (Log) Notify(title, description string) {
	log.Info().Str("title", title).Str("description", description).Msg("toast")
}

// Writer prints toasts to a terminal.
type Writer struct {
	W io.Writer
}

func (w Writer) Notify(title, description string) {
	fmt.Fprintf(w.W, "\n  %s\n  %s\n\n", title, description)
}

// Multi fans a toast out to every notifier in order. Nil entries are skipped.
type Multi []Notifier

func (m Multi) Notify(title, description string) {
	for _, n := range m {
		if n != nil {
			n.Notify(title, description)
		}
	}
}

// Recorder keeps every toast in memory.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(title, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, Toast{Title: title, Description: description})
}

// Toasts returns a copy of everything recorded so far.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}
