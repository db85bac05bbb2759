package consult

import (
    "fmt"
    "strings"

    "github.com/example/research-institute/internal/contact"
)

type Kind int

const (
    NoCredential Kind = iota
    Empty
    Success
    Failure
)

func (k Kind) String() string {
    switch k {
    case NoCredential:
        return "no_credential"
    case Empty:
        return "empty"
    case Success:
        return "success"
    case Failure:
        return "failure"
    }
    return fmt.Sprintf("kind(%d)", int(k))
}

// Outcome is the result of one consultation attempt before it is turned into
// display text. Text is set for Success, Err for Failure.
type Outcome struct {
    Kind Kind
    Text string
    Err  error
}

// Replies holds the fixed strings shown when the model gives no answer.
type Replies struct {
    NoCredential string
    Empty        string
    Failure      string
}

func DefaultReplies(ch contact.Channel) Replies {
    return Replies{
        NoCredential: fmt.Sprintf("Welcome! I'm the Research Strategist. For direct project quotes or deep strategy, please message %s on WhatsApp at %s.", ch.Owner, ch.Display()),
        Empty:        fmt.Sprintf("I processed your request but have no specific advice. Let's discuss on WhatsApp at %s!", ch.Display()),
        Failure:      fmt.Sprintf("I'm having a connection issue. Please chat with %s directly on WhatsApp (%s) for priority service!", ch.Owner, ch.Display()),
    }
}

// Resolve maps every outcome to non-empty display text.
func (r Replies) Resolve(o Outcome) string {
    switch o.Kind {
    case Success:
        if strings.TrimSpace(o.Text) != "" { return o.Text }
        return r.Empty
    case Empty:
        return r.Empty
    case NoCredential:
        return r.NoCredential
    }
    return r.Failure
}
