package models

type Role string

const (
    RoleUser      Role = "user"
    RoleAssistant Role = "assistant"
)

// Message is one transcript entry. Messages are never edited once appended.
type Message struct {
    Role    Role   `json:"role"`
    Content string `json:"content"`
}

// State is a point-in-time copy of a consultation widget.
type State struct {
    Messages []Message `json:"messages"`
    Input    string    `json:"input,omitempty"`
    Busy     bool      `json:"busy"`
}

// Last returns the most recent message, or false on an empty transcript.
func (s State) Last() (Message, bool) {
    if len(s.Messages) == 0 { return Message{}, false }
    return s.Messages[len(s.Messages)-1], true
}
