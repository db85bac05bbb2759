// Package tui mounts a consultation widget in the terminal.
package tui

import (
    "context"
    "strings"

    "github.com/charmbracelet/bubbles/key"
    "github.com/charmbracelet/bubbles/spinner"
    "github.com/charmbracelet/bubbles/textinput"
    "github.com/charmbracelet/bubbles/viewport"
    tea "github.com/charmbracelet/bubbletea"
    "github.com/charmbracelet/lipgloss"

    "github.com/example/research-institute/internal/models"
    "github.com/example/research-institute/internal/widget"
)

// replyMsg is sent when an outstanding consultation has been applied.
type replyMsg struct{}

func waitReply(done <-chan struct{}) tea.Cmd {
    return func() tea.Msg {
        <-done
        return replyMsg{}
    }
}

type Model struct {
    ctx     context.Context
    widget  *widget.Widget
    title   string
    input    textinput.Model
    spinner  spinner.Model
    viewport viewport.Model

    state  models.State
    width  int
    height int
}

// chromeRows is the title, subtitle, busy line, input and help line.
const chromeRows = 5

func NewModel(ctx context.Context, w *widget.Widget, title string) Model {
    ti := textinput.New()
    ti.Placeholder = "How can we help your project?"
    ti.CharLimit = 2000
    ti.Focus()

    sp := spinner.New()
    sp.Spinner = spinner.Dot
    sp.Style = busyStyle

    vp := viewport.New(80, 24-chromeRows)
    // letters belong to the input; only paging keys and the wheel scroll
    vp.KeyMap = viewport.KeyMap{
        PageUp:   key.NewBinding(key.WithKeys("pgup")),
        PageDown: key.NewBinding(key.WithKeys("pgdown")),
    }

    m := Model{ctx: ctx, widget: w, title: title, input: ti, spinner: sp, viewport: vp, width: 80, height: 24}
    m.refresh()
    return m
}

func (m Model) Init() tea.Cmd {
    return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
    switch msg := msg.(type) {
    case tea.WindowSizeMsg:
        m.width = msg.Width
        m.height = msg.Height
        m.input.Width = max(10, msg.Width-4)
        m.viewport.Width = msg.Width
        m.viewport.Height = max(1, msg.Height-chromeRows)
        m.refresh()
        return m, nil

    case replyMsg:
        m.refresh()
        return m, nil

    case spinner.TickMsg:
        if !m.state.Busy { return m, nil }
        var cmd tea.Cmd
        m.spinner, cmd = m.spinner.Update(msg)
        return m, cmd

    case tea.KeyMsg:
        switch msg.String() {
        case "ctrl+c", "esc":
            m.widget.Close()
            return m, tea.Quit
        case "enter":
            done, ok := m.widget.Send(m.ctx, m.input.Value())
            if !ok { return m, nil }
            m.input.Reset()
            m.refresh()
            return m, tea.Batch(waitReply(done), m.spinner.Tick)
        }
    }
    var tiCmd, vpCmd tea.Cmd
    m.input, tiCmd = m.input.Update(msg)
    m.viewport, vpCmd = m.viewport.Update(msg)
    return m, tea.Batch(tiCmd, vpCmd)
}

// refresh re-reads the widget and scrolls to the latest message.
func (m *Model) refresh() {
    m.state = m.widget.Snapshot()
    m.viewport.SetContent(m.renderTranscript())
    m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
    wrap := max(20, m.width*85/100)
    blocks := make([]string, 0, len(m.state.Messages))
    for _, msg := range m.state.Messages {
        var block string
        if msg.Role == models.RoleUser {
            block = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, userStyle.Width(min(wrap, lipgloss.Width(msg.Content)+2)).Render(msg.Content))
        } else {
            block = assistantStyle.Width(wrap).Render(msg.Content)
        }
        blocks = append(blocks, block)
    }
    return strings.Join(blocks, "\n")
}

func (m Model) View() string {
    var b strings.Builder
    b.WriteString(titleStyle.Render(m.title))
    b.WriteString("\n")
    b.WriteString(subtitleStyle.Render("Expert Strategy • Online"))
    b.WriteString("\n")

    b.WriteString(m.viewport.View())
    b.WriteString("\n")

    if m.state.Busy {
        b.WriteString(m.spinner.View() + busyStyle.Render(" Strategizing..."))
    }
    b.WriteString("\n")
    b.WriteString(m.input.View())
    b.WriteString("\n")
    b.WriteString(dimStyle.Render("enter send • pgup/pgdown scroll • esc quit"))
    return b.String()
}

// Transcript exposes the rendered state, mainly for tests.
func (m Model) Transcript() models.State { return m.state }

// Run mounts w in a full-screen program until the user quits.
func Run(ctx context.Context, w *widget.Widget, title string) error {
    _, err := tea.NewProgram(NewModel(ctx, w, title), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
    return err
}
