package llm

import (
    "context"
    "sync"
)

// MockClient returns a canned reply. It is selected with transport "mock" for
// local previews and used by tests to count outbound calls.
type MockClient struct {
    Reply string
    Err   error

    mu    sync.Mutex
    calls []Request
}

func (m *MockClient) GenerateText(ctx context.Context, req Request) (string, error) {
    m.mu.Lock()
    m.calls = append(m.calls, req)
    m.mu.Unlock()
    if m.Err != nil { return "", m.Err }
    return m.Reply, nil
}

// Calls returns the requests received so far.
func (m *MockClient) Calls() []Request {
    m.mu.Lock()
    defer m.mu.Unlock()
    out := make([]Request, len(m.calls))
    copy(out, m.calls)
    return out
}
