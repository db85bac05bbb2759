package desk

import (
    "encoding/json"
    "sync"
)

// Event is a generic SSE payload wrapper.
type Event struct {
    Event     string      `json:"event"`
    SessionID string      `json:"session_id"`
    Payload   interface{} `json:"payload,omitempty"`
}

type subscriber chan []byte

type Hub struct {
    mu   sync.RWMutex
    subs map[string]map[subscriber]struct{} // sessionID -> set of subscribers
}

func NewHub() *Hub { return &Hub{subs: map[string]map[subscriber]struct{}{}} }

func (h *Hub) Subscribe(sessionID string) (subscriber, func()) {
    ch := make(subscriber, 16)
    h.mu.Lock()
    set := h.subs[sessionID]
    if set == nil { set = map[subscriber]struct{}{}; h.subs[sessionID] = set }
    set[ch] = struct{}{}
    h.mu.Unlock()
    var once sync.Once
    unsubscribe := func() {
        once.Do(func() {
            h.mu.Lock()
            if set, ok := h.subs[sessionID]; ok {
                if _, ok := set[ch]; ok {
                    delete(set, ch)
                    close(ch)
                }
                if len(set) == 0 { delete(h.subs, sessionID) }
            }
            h.mu.Unlock()
        })
    }
    return ch, unsubscribe
}

func (h *Hub) Publish(sessionID string, ev Event) {
    b, _ := json.Marshal(ev)
    h.mu.RLock()
    set := h.subs[sessionID]
    for ch := range set {
        // non-blocking send
        select { case ch <- b: default: }
    }
    h.mu.RUnlock()
}

// Subscribers reports how many streams are attached to a session.
func (h *Hub) Subscribers(sessionID string) int {
    h.mu.RLock()
    defer h.mu.RUnlock()
    return len(h.subs[sessionID])
}

// CloseSession closes every subscriber of a session so SSE streams end.
func (h *Hub) CloseSession(sessionID string) {
    h.mu.Lock()
    for ch := range h.subs[sessionID] { close(ch) }
    delete(h.subs, sessionID)
    h.mu.Unlock()
}
