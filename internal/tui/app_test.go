package tui

import (
    "context"
    "strings"
    "testing"

    tea "github.com/charmbracelet/bubbletea"

    "github.com/example/research-institute/internal/models"
    "github.com/example/research-institute/internal/widget"
)

func newTestModel(reply string) (Model, *widget.Widget) {
    w := widget.New(widget.ConsultantFunc(func(ctx context.Context, prompt string) string { return reply }), widget.WithGreeting("Welcome, researcher."))
    return NewModel(context.Background(), w, "Research Architect AI"), w
}

func typeText(m Model, s string) Model {
    for _, r := range s {
        next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
        m = next.(Model)
    }
    return m
}

func TestModel_SubmitAndReply(t *testing.T) {
    m, w := newTestModel("Here is a topic idea...")
    m = typeText(m, "I need a thesis topic")

    next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
    m = next.(Model)
    if cmd == nil {
        t.Fatal("expected a command waiting for the reply")
    }
    if got := len(m.Transcript().Messages); got < 2 {
        t.Fatalf("user message not shown, %d messages", got)
    }
    if m.input.Value() != "" {
        t.Errorf("input not cleared: %q", m.input.Value())
    }

    batch, ok := cmd().(tea.BatchMsg)
    if !ok {
        t.Fatalf("expected batch, got %T", cmd())
    }
    var reply tea.Msg
    for _, c := range batch {
        if c == nil {
            continue
        }
        if msg, ok := c().(replyMsg); ok {
            reply = msg
        }
    }
    if reply == nil {
        t.Fatal("no command resolved to a reply")
    }
    if w.Snapshot().Busy {
        t.Error("widget should be idle once the reply command returns")
    }
    next, _ = m.Update(reply)
    m = next.(Model)

    s := m.Transcript()
    last, _ := s.Last()
    if len(s.Messages) != 3 || s.Busy || last.Role != models.RoleAssistant || last.Content != "Here is a topic idea..." {
        t.Errorf("unexpected transcript: %+v", s)
    }
    if !strings.Contains(m.View(), "Here is a topic idea...") {
        t.Error("reply should be visible after auto-scroll")
    }
}

func TestModel_BlankEnterIgnored(t *testing.T) {
    m, _ := newTestModel("unused")
    m = typeText(m, "   ")
    next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
    m = next.(Model)
    if cmd != nil {
        t.Error("blank input must not start a request")
    }
    if n := len(m.Transcript().Messages); n != 1 {
        t.Errorf("transcript length = %d", n)
    }
}

func TestModel_QuitClosesWidget(t *testing.T) {
    m, w := newTestModel("unused")
    _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
    if cmd == nil {
        t.Fatal("expected quit command")
    }
    if _, ok := cmd().(tea.QuitMsg); !ok {
        t.Error("esc should quit")
    }
    if !w.Closed() {
        t.Error("widget should be unmounted on quit")
    }
}

func TestModel_AutoScroll(t *testing.T) {
    m, w := newTestModel("ok")
    next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 8})
    m = next.(Model)
    for i := 0; i < 5; i++ {
        done, ok := w.Send(context.Background(), "question")
        if !ok {
            t.Fatalf("send %d rejected", i)
        }
        <-done
    }
    next, _ = m.Update(replyMsg{})
    m = next.(Model)
    if !m.viewport.AtBottom() || m.viewport.YOffset == 0 {
        t.Errorf("expected view pinned to bottom, offset=%d", m.viewport.YOffset)
    }
    next, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
    if next.(Model).viewport.YOffset >= m.viewport.YOffset {
        t.Error("pgup should scroll back")
    }
}

func TestModel_TypingDoesNotScroll(t *testing.T) {
    m, w := newTestModel("ok")
    next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 8})
    m = next.(Model)
    for i := 0; i < 5; i++ {
        done, _ := w.Send(context.Background(), "question")
        <-done
    }
    next, _ = m.Update(replyMsg{})
    m = next.(Model)
    offset := m.viewport.YOffset

    m = typeText(m, "kbjd")
    if m.viewport.YOffset != offset {
        t.Errorf("typing moved the transcript from %d to %d", offset, m.viewport.YOffset)
    }
    if m.input.Value() != "kbjd" {
        t.Errorf("input = %q", m.input.Value())
    }
}
