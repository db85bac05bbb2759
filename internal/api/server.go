package api

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/sirupsen/logrus"

    "github.com/example/research-institute/internal/desk"
    "github.com/example/research-institute/internal/models"
    "github.com/example/research-institute/internal/page"
    "github.com/example/research-institute/internal/widget"
)

type Server struct {
    Desk       *desk.Desk
    Consultant widget.Consultant
    Page       *page.Page
    Log        logrus.FieldLogger

    now func() time.Time
}

func NewServer(d *desk.Desk, c widget.Consultant, p *page.Page, log logrus.FieldLogger) *Server {
    if log == nil { log = logrus.StandardLogger() }
    return &Server{Desk: d, Consultant: c, Page: p, Log: log, now: time.Now}
}

type sessionView struct {
    ID    string       `json:"id"`
    State models.State `json:"state"`
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
    mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        w.Write([]byte("ok"))
    })

    mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/" { http.NotFound(w, r); return }
        if r.Method != http.MethodGet { w.WriteHeader(http.StatusMethodNotAllowed); return }
        w.Header().Set("Content-Type", "text/html; charset=utf-8")
        if err := s.Page.Render(w, s.now()); err != nil {
            s.Log.WithError(err).Error("render page")
        }
    })

    // headless one-shot consultation
    mux.HandleFunc("/consult", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodPost { w.WriteHeader(http.StatusMethodNotAllowed); return }
        var req struct{ Prompt string `json:"prompt"` }
        if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
            http.Error(w, err.Error(), http.StatusBadRequest)
            return
        }
        if strings.TrimSpace(req.Prompt) == "" { http.Error(w, "missing prompt", http.StatusBadRequest); return }
        reply := s.Consultant.Consult(r.Context(), strings.TrimSpace(req.Prompt))
        respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
    })

    mux.HandleFunc("/consultations", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodPost { w.WriteHeader(http.StatusMethodNotAllowed); return }
        sess := s.Desk.Open()
        respondJSON(w, http.StatusCreated, sessionView{ID: sess.ID, State: sess.Widget.Snapshot()})
    })

    mux.HandleFunc("/consultations/", func(w http.ResponseWriter, r *http.Request) {
        // path: /consultations/{id}[/messages|/events]
        rest := strings.Trim(r.URL.Path[len("/consultations/"):], "/")
        id, action, _ := strings.Cut(rest, "/")
        sess, ok := s.Desk.Get(id)
        if id == "" || !ok { http.NotFound(w, r); return }
        switch {
        case action == "" && r.Method == http.MethodGet:
            respondJSON(w, http.StatusOK, sessionView{ID: id, State: sess.Widget.Snapshot()})
        case action == "" && r.Method == http.MethodDelete:
            s.Desk.Close(id)
            w.WriteHeader(http.StatusNoContent)
        case action == "messages" && r.Method == http.MethodPost:
            s.postMessage(w, r, sess)
        case action == "events" && r.Method == http.MethodGet:
            s.streamEvents(w, r, sess)
        case action == "" || action == "messages" || action == "events":
            w.WriteHeader(http.StatusMethodNotAllowed)
        default:
            http.NotFound(w, r)
        }
    })
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request, sess *desk.Session) {
    var req struct{ Text string `json:"text"` }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    // the reply must land even if this request goes away
    done, ok := sess.Widget.Send(context.WithoutCancel(r.Context()), req.Text)
    if !ok {
        switch {
        case strings.TrimSpace(req.Text) == "":
            http.Error(w, "message is blank", http.StatusUnprocessableEntity)
        case sess.Widget.Closed():
            http.NotFound(w, r)
        default:
            http.Error(w, "a consultation request is already in progress", http.StatusConflict)
        }
        return
    }
    if r.URL.Query().Get("wait") == "1" {
        select {
        case <-done:
            respondJSON(w, http.StatusOK, sessionView{ID: sess.ID, State: sess.Widget.Snapshot()})
        case <-r.Context().Done():
        }
        return
    }
    respondJSON(w, http.StatusAccepted, sessionView{ID: sess.ID, State: sess.Widget.Snapshot()})
}

func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request, sess *desk.Session) {
    flusher, ok := w.(http.Flusher)
    if !ok { http.Error(w, "streaming unsupported", http.StatusInternalServerError); return }
    ch, unsub := s.Desk.Subscribe(sess.ID)
    defer unsub()

    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("Connection", "keep-alive")
    initial, _ := json.Marshal(desk.Event{Event: "state", SessionID: sess.ID, Payload: sess.Widget.Snapshot()})
    writeSSE(w, initial)
    flusher.Flush()
    for {
        select {
        case <-r.Context().Done():
            return
        case b, ok := <-ch:
            if !ok { return }
            writeSSE(w, b)
            flusher.Flush()
        }
    }
}

func writeSSE(w http.ResponseWriter, data []byte) {
    fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    enc := json.NewEncoder(w)
    enc.SetIndent("", "  ")
    enc.Encode(v)
}
