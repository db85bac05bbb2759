package desk

import (
    "context"
    "encoding/json"
    "testing"
    "time"

    "github.com/sirupsen/logrus/hooks/test"

    "github.com/example/research-institute/internal/widget"
)

func echoConsultant() widget.Consultant {
    return widget.ConsultantFunc(func(ctx context.Context, prompt string) string { return "re: " + prompt })
}

func newTestDesk() *Desk {
    d := New(echoConsultant(), "greetings")
    d.Log, _ = test.NewNullLogger()
    return d
}

func TestDesk_OpenGetClose(t *testing.T) {
    d := newTestDesk()
    s := d.Open()
    if s.ID == "" {
        t.Fatal("expected session id")
    }
    got, ok := d.Get(s.ID)
    if !ok || got != s {
        t.Fatalf("Get(%s) = %v, %v", s.ID, got, ok)
    }
    if first := s.Widget.Snapshot().Messages[0].Content; first != "greetings" {
        t.Errorf("seed = %q", first)
    }
    if !d.Close(s.ID) {
        t.Error("Close should report true")
    }
    if !s.Widget.Closed() {
        t.Error("widget should be unmounted")
    }
    if _, ok := d.Get(s.ID); ok {
        t.Error("session should be gone")
    }
    if d.Close(s.ID) {
        t.Error("second Close should report false")
    }
}

func TestDesk_SessionsAreIndependent(t *testing.T) {
    d := newTestDesk()
    a, b := d.Open(), d.Open()
    done, ok := a.Widget.Send(context.Background(), "hi")
    if !ok {
        t.Fatal("send rejected")
    }
    <-done
    if n := len(a.Widget.Snapshot().Messages); n != 3 {
        t.Errorf("a has %d messages", n)
    }
    if n := len(b.Widget.Snapshot().Messages); n != 1 {
        t.Errorf("b has %d messages", n)
    }
}

func TestDesk_PublishesState(t *testing.T) {
    d := newTestDesk()
    s := d.Open()
    ch, unsub := d.Subscribe(s.ID)
    defer unsub()

    done, _ := s.Widget.Send(context.Background(), "topic?")
    <-done

    var events []Event
    for len(events) < 2 {
        select {
        case b := <-ch:
            var ev Event
            if err := json.Unmarshal(b, &ev); err != nil {
                t.Fatalf("decoding event: %v", err)
            }
            events = append(events, ev)
        case <-time.After(2 * time.Second):
            t.Fatalf("expected 2 events, got %d", len(events))
        }
    }
    for _, ev := range events {
        if ev.Event != "state" || ev.SessionID != s.ID {
            t.Errorf("unexpected event: %+v", ev)
        }
    }
    last := events[1].Payload.(map[string]any)
    if last["busy"] != false {
        t.Errorf("final event should be idle: %v", last)
    }
}

func TestDesk_CloseEndsSubscriptions(t *testing.T) {
    d := newTestDesk()
    s := d.Open()
    ch, unsub := d.Subscribe(s.ID)
    d.Close(s.ID)
    if _, ok := <-ch; ok {
        t.Error("channel should be closed")
    }
    unsub() // must not panic after close
}

func TestDesk_Sweep(t *testing.T) {
    d := newTestDesk()
    now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
    d.now = func() time.Time { return now }
    old := d.Open()
    now = now.Add(time.Hour)
    fresh := d.Open()

    if n := d.Sweep(30 * time.Minute); n != 1 {
        t.Fatalf("swept %d, want 1", n)
    }
    if _, ok := d.Get(old.ID); ok {
        t.Error("idle session should be swept")
    }
    if _, ok := d.Get(fresh.ID); !ok {
        t.Error("fresh session should remain")
    }
    if d.Len() != 1 {
        t.Errorf("Len = %d", d.Len())
    }
}

func TestDesk_SweepKeepsStreamedSessions(t *testing.T) {
    d := newTestDesk()
    now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
    d.now = func() time.Time { return now }
    s := d.Open()
    ch, unsub := d.Subscribe(s.ID)

    now = now.Add(time.Hour)
    if n := d.Sweep(30 * time.Minute); n != 0 {
        t.Fatalf("swept %d sessions with a live stream", n)
    }
    if _, ok := d.Get(s.ID); !ok || s.Widget.Closed() {
        t.Fatal("watched session should stay mounted")
    }
    select {
    case _, ok := <-ch:
        if !ok {
            t.Fatal("stream should stay open")
        }
    default:
    }

    // idle clock restarts once the stream ends
    unsub()
    now = now.Add(10 * time.Minute)
    if n := d.Sweep(30 * time.Minute); n != 0 {
        t.Errorf("swept %d sessions right after the stream ended", n)
    }
    now = now.Add(time.Hour)
    if n := d.Sweep(30 * time.Minute); n != 1 {
        t.Errorf("swept %d, want 1 once the stream is gone", n)
    }
}

func TestDesk_SubscribeAfterClose(t *testing.T) {
    d := newTestDesk()
    s := d.Open()
    d.Close(s.ID)

    ch, unsub := d.Subscribe(s.ID)
    defer unsub()
    select {
    case _, ok := <-ch:
        if ok {
            t.Error("expected a closed channel")
        }
    case <-time.After(time.Second):
        t.Fatal("subscription to a closed session must not block")
    }
    if n := d.hub.Subscribers(s.ID); n != 0 {
        t.Errorf("closed session has %d subscribers", n)
    }
}
