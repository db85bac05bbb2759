package llm

import (
    "context"
)

// Request is one generateContent call: a single user prompt under a fixed
// system instruction. No prior turns are sent.
type Request struct {
    Model             string
    Prompt            string
    SystemInstruction string
}

// Client is the text-generation transport used by the consultation client.
// An empty answer is reported as "", nil; only transport or service failures
// return an error.
type Client interface {
    GenerateText(ctx context.Context, req Request) (string, error)
}
