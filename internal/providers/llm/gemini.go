package llm

import (
    "context"
    "errors"
    "strings"

    genai "github.com/google/generative-ai-go/genai"
    "google.golang.org/api/option"
)

// GeminiClient uses the official generative-ai-go SDK. A fresh SDK client is
// opened per call so a rotated key in the environment takes effect immediately.
type GeminiClient struct {
    APIKey string
    // Endpoint is a host endpoint for option.WithEndpoint, not a REST base URL.
    Endpoint string
}

func (c *GeminiClient) GenerateText(ctx context.Context, req Request) (string, error) {
    opts := []option.ClientOption{option.WithAPIKey(c.APIKey)}
    if c.Endpoint != "" { opts = append(opts, option.WithEndpoint(c.Endpoint)) }
    client, err := genai.NewClient(ctx, opts...)
    if err != nil { return "", err }
    defer client.Close()

    model := client.GenerativeModel(req.Model)
    if req.SystemInstruction != "" {
        model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemInstruction)}}
    }
    resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
    if err != nil {
        var blocked *genai.BlockedError
        if errors.As(err, &blocked) { return "", nil }
        return "", err
    }
    return firstText(resp), nil
}

func firstText(r *genai.GenerateContentResponse) string {
    if r == nil { return "" }
    for _, c := range r.Candidates {
        if c == nil || c.Content == nil { continue }
        var sb strings.Builder
        for _, part := range c.Content.Parts {
            if t, ok := part.(genai.Text); ok { sb.WriteString(string(t)) }
        }
        if sb.Len() > 0 { return sb.String() }
    }
    return ""
}
