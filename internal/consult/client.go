// Package consult turns a visitor's free text into a displayable reply from
// the text-generation service. Every path ends in text; callers never see an
// error.
package consult

import (
    "context"
    "errors"
    "strings"
    "time"

    "github.com/sirupsen/logrus"

    "github.com/example/research-institute/internal/contact"
    "github.com/example/research-institute/internal/providers/llm"
)

// Dialer builds a transport for the credential found at call time.
type Dialer func(apiKey string) (llm.Client, error)

type Client struct {
    Credential        func() string
    Dial              Dialer
    Model             string
    SystemInstruction string
    // Timeout bounds a single call; zero leaves it to ctx.
    Timeout time.Duration
    Replies Replies
    Log     logrus.FieldLogger
}

// New returns a Client with the institute persona and default replies.
func New(ch contact.Channel, credential func() string, dial Dialer) *Client {
    return &Client{
        Credential:        credential,
        Dial:              dial,
        Model:             DefaultModel,
        SystemInstruction: SystemInstruction(ch),
        Replies:           DefaultReplies(ch),
        Log:               logrus.StandardLogger(),
    }
}

// Consult is the widget-facing call: one attempt, always non-empty text.
func (c *Client) Consult(ctx context.Context, prompt string) string {
    return c.Replies.Resolve(c.Fetch(ctx, prompt))
}

// Fetch performs the attempt and reports what happened. Failures are logged
// here and nowhere else.
func (c *Client) Fetch(ctx context.Context, prompt string) Outcome {
    key := ""
    if c.Credential != nil { key = c.Credential() }
    if key == "" {
        c.logger().Debug("consultation: no credential configured, using fallback")
        return Outcome{Kind: NoCredential}
    }
    if c.Dial == nil { return c.fail(errors.New("no transport configured")) }
    client, err := c.Dial(key)
    if err != nil { return c.fail(err) }

    if c.Timeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(ctx, c.Timeout)
        defer cancel()
    }
    text, err := client.GenerateText(ctx, llm.Request{Model: c.Model, Prompt: prompt, SystemInstruction: c.SystemInstruction})
    if err != nil { return c.fail(err) }
    if strings.TrimSpace(text) == "" {
        c.logger().WithField("model", c.Model).Debug("consultation: empty answer")
        return Outcome{Kind: Empty}
    }
    return Outcome{Kind: Success, Text: text}
}

func (c *Client) fail(err error) Outcome {
    c.logger().WithField("model", c.Model).WithError(err).Error("consultation request failed")
    return Outcome{Kind: Failure, Err: err}
}

func (c *Client) logger() logrus.FieldLogger {
    if c.Log != nil { return c.Log }
    return logrus.StandardLogger()
}
