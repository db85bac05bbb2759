package llm

import (
    "fmt"
    "net/http"
    "strings"
)

const (
    TransportSDK  = "sdk"
    TransportHTTP = "http"
    TransportMock = "mock"
)

const mockReply = "Thanks for reaching out. This is a local preview reply; a strategist will follow up on WhatsApp."

// New returns a Client for the given transport. target means something
// different per transport:
// - sdk:  generative-ai-go (default), target is an SDK host endpoint
// - http: generateContent REST endpoint, target is a base URL such as
//   https://host/v1beta
// - mock: canned reply, never touches the network
func New(transport, apiKey, target string, httpClient *http.Client) (Client, error) {
    switch strings.ToLower(strings.TrimSpace(transport)) {
    case "", TransportSDK:
        return &GeminiClient{APIKey: apiKey, Endpoint: target}, nil
    case TransportHTTP:
        return &GeminiHTTPClient{APIKey: apiKey, BaseURL: strings.TrimRight(target, "/"), HTTP: httpClient}, nil
    case TransportMock:
        return &MockClient{Reply: mockReply}, nil
    }
    return nil, fmt.Errorf("unknown llm transport %q", transport)
}
