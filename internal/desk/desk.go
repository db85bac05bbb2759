// Package desk keeps one mounted consultation widget per web visitor and fans
// widget state changes out to SSE subscribers.
package desk

import (
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/sirupsen/logrus"

    "github.com/example/research-institute/internal/models"
    "github.com/example/research-institute/internal/widget"
)

type Session struct {
    ID        string
    Widget    *widget.Widget
    CreatedAt time.Time

    mu         sync.Mutex
    lastActive time.Time
}

func (s *Session) touch(now time.Time) {
    s.mu.Lock()
    s.lastActive = now
    s.mu.Unlock()
}

func (s *Session) LastActive() time.Time {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.lastActive
}

type Desk struct {
    Consultant widget.Consultant
    Greeting   string
    Log        logrus.FieldLogger

    sessionsMu sync.RWMutex
    sessions   map[string]*Session

    hub *Hub
    now func() time.Time
}

func New(consultant widget.Consultant, greeting string) *Desk {
    return &Desk{
        Consultant: consultant,
        Greeting:   greeting,
        Log:        logrus.StandardLogger(),
        sessions:   map[string]*Session{},
        hub:        NewHub(),
        now:        time.Now,
    }
}

// Open mounts a fresh widget under a new session ID.
func (d *Desk) Open() *Session {
    id := uuid.NewString()
    opts := []widget.Option{widget.WithObserver(func(st models.State) {
        d.hub.Publish(id, Event{Event: "state", SessionID: id, Payload: st})
    })}
    if d.Greeting != "" { opts = append(opts, widget.WithGreeting(d.Greeting)) }
    now := d.now()
    s := &Session{ID: id, Widget: widget.New(d.Consultant, opts...), CreatedAt: now, lastActive: now}
    d.sessionsMu.Lock()
    d.sessions[id] = s
    d.sessionsMu.Unlock()
    d.Log.WithField("session", id).Debug("consultation session opened")
    return s
}

// Get returns a session and marks it active.
func (d *Desk) Get(id string) (*Session, bool) {
    d.sessionsMu.RLock()
    s, ok := d.sessions[id]
    d.sessionsMu.RUnlock()
    if ok { s.touch(d.now()) }
    return s, ok
}

// Close unmounts a session's widget and ends its event streams.
func (d *Desk) Close(id string) bool {
    d.sessionsMu.Lock()
    s, ok := d.sessions[id]
    delete(d.sessions, id)
    d.sessionsMu.Unlock()
    if !ok { return false }
    s.Widget.Close()
    d.hub.CloseSession(id)
    d.Log.WithField("session", id).Debug("consultation session closed")
    return true
}

// Sweep closes sessions idle for longer than maxIdle and reports how many.
// Busy sessions and sessions with a live event stream are kept.
func (d *Desk) Sweep(maxIdle time.Duration) int {
    cutoff := d.now().Add(-maxIdle)
    var stale []*Session
    d.sessionsMu.Lock()
    for id, s := range d.sessions {
        if !s.LastActive().Before(cutoff) || s.Widget.Snapshot().Busy || d.hub.Subscribers(id) > 0 { continue }
        delete(d.sessions, id)
        stale = append(stale, s)
    }
    d.sessionsMu.Unlock()
    for _, s := range stale {
        s.Widget.Close()
        d.hub.CloseSession(s.ID)
    }
    if n := len(stale); n > 0 { d.Log.WithField("closed", n).Info("swept idle consultation sessions") }
    return len(stale)
}

func (d *Desk) Len() int {
    d.sessionsMu.RLock()
    defer d.sessionsMu.RUnlock()
    return len(d.sessions)
}

// Subscribe returns a channel carrying JSON-encoded Event payloads for a session.
// The channel is already closed if the session is not mounted. The caller must
// call the returned unsubscribe func when done; the session's idle clock
// restarts when the stream ends.
func (d *Desk) Subscribe(id string) (<-chan []byte, func()) {
    d.sessionsMu.RLock()
    s, ok := d.sessions[id]
    if !ok {
        d.sessionsMu.RUnlock()
        ch := make(chan []byte)
        close(ch)
        return ch, func() {}
    }
    ch, unsub := d.hub.Subscribe(id)
    d.sessionsMu.RUnlock()
    return ch, func() {
        unsub()
        s.touch(d.now())
    }
}
