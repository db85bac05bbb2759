// Package widget is the consultation chat view-model: an append-only
// transcript, the pending input line and a busy flag that serializes
// submissions. Rendering is left to the mount (web page, terminal).
package widget

import (
    "context"
    "strings"
    "sync"

    "github.com/example/research-institute/internal/models"
)

// Consultant produces the assistant reply for one user turn. It must always
// return displayable text.
type Consultant interface {
    Consult(ctx context.Context, prompt string) string
}

type ConsultantFunc func(ctx context.Context, prompt string) string

func (f ConsultantFunc) Consult(ctx context.Context, prompt string) string { return f(ctx, prompt) }

type Option func(*Widget)

// WithGreeting replaces the seed message.
func WithGreeting(text string) Option {
    return func(w *Widget) { w.greeting = text }
}

// WithObserver registers fn to receive a snapshot after every transcript or
// busy change. Mounts use it to scroll to the latest message.
func WithObserver(fn func(models.State)) Option {
    return func(w *Widget) { w.observers = append(w.observers, fn) }
}

const defaultGreeting = "Welcome! How can I help with your research today?"

type Widget struct {
    consultant Consultant
    greeting   string
    observers  []func(models.State)

    mu         sync.Mutex
    transcript []models.Message
    input      string
    busy       bool
    closed     bool
}

func New(c Consultant, opts ...Option) *Widget {
    w := &Widget{consultant: c, greeting: defaultGreeting}
    for _, o := range opts { o(w) }
    w.transcript = []models.Message{{Role: models.RoleAssistant, Content: w.greeting}}
    return w
}

func (w *Widget) SetInput(text string) {
    w.mu.Lock()
    w.input = text
    w.mu.Unlock()
}

func (w *Widget) Input() string {
    w.mu.Lock()
    defer w.mu.Unlock()
    return w.input
}

// Submit sends the pending input. It returns false without touching state when
// the trimmed input is blank, a request is outstanding, or the widget is closed.
// Otherwise the user message is appended before Submit returns and the reply is
// appended asynchronously; the returned channel closes once busy is cleared.
func (w *Widget) Submit(ctx context.Context) (<-chan struct{}, bool) {
    w.mu.Lock()
    return w.submitLocked(ctx, w.input)
}

// Send submits text in place of the pending input. A rejected Send leaves the
// pending input untouched.
func (w *Widget) Send(ctx context.Context, text string) (<-chan struct{}, bool) {
    w.mu.Lock()
    return w.submitLocked(ctx, text)
}

// submitLocked is entered with w.mu held and releases it.
func (w *Widget) submitLocked(ctx context.Context, raw string) (<-chan struct{}, bool) {
    text := strings.TrimSpace(raw)
    if text == "" || w.busy || w.closed {
        w.mu.Unlock()
        return nil, false
    }
    w.transcript = append(w.transcript, models.Message{Role: models.RoleUser, Content: text})
    w.input = ""
    w.busy = true
    snap := w.snapshotLocked()
    w.mu.Unlock()
    w.notify(snap)

    done := make(chan struct{})
    go func() {
        defer close(done)
        reply := w.consultant.Consult(ctx, text)

        w.mu.Lock()
        // a closed widget has been unmounted; drop the late reply
        if !w.closed {
            w.transcript = append(w.transcript, models.Message{Role: models.RoleAssistant, Content: reply})
        }
        w.busy = false
        closed := w.closed
        snap := w.snapshotLocked()
        w.mu.Unlock()
        if !closed { w.notify(snap) }
    }()
    return done, true
}

func (w *Widget) Snapshot() models.State {
    w.mu.Lock()
    defer w.mu.Unlock()
    return w.snapshotLocked()
}

// Close unmounts the widget. An outstanding request still completes but its
// reply is discarded and observers are no longer called.
func (w *Widget) Close() {
    w.mu.Lock()
    w.closed = true
    w.mu.Unlock()
}

func (w *Widget) Closed() bool {
    w.mu.Lock()
    defer w.mu.Unlock()
    return w.closed
}

func (w *Widget) snapshotLocked() models.State {
    msgs := make([]models.Message, len(w.transcript))
    copy(msgs, w.transcript)
    return models.State{Messages: msgs, Input: w.input, Busy: w.busy}
}

func (w *Widget) notify(s models.State) {
    for _, fn := range w.observers { fn(s) }
}
