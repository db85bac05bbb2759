package llm

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/url"
    "strings"
)

const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// StatusError is returned for non-2xx responses from the REST endpoint.
type StatusError struct {
    Code int
    Body map[string]any
}

func (e *StatusError) Error() string { return fmt.Sprintf("gemini status %d: %v", e.Code, e.Body) }

// GeminiHTTPClient talks to the generateContent REST endpoint directly.
type GeminiHTTPClient struct {
    APIKey  string
    BaseURL string
    HTTP    *http.Client
}

type geminiPart struct {
    Text string `json:"text"`
}

type geminiContent struct {
    Role  string       `json:"role,omitempty"`
    Parts []geminiPart `json:"parts"`
}

func (c *GeminiHTTPClient) GenerateText(ctx context.Context, req Request) (string, error) {
    body := struct{
        Contents          []geminiContent `json:"contents"`
        SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
    }{
        Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
    }
    if req.SystemInstruction != "" {
        body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemInstruction}}}
    }
    b, err := json.Marshal(body)
    if err != nil { return "", err }
    hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(req.Model), bytes.NewReader(b))
    if err != nil { return "", err }
    hreq.Header.Set("content-type", "application/json")
    res, err := c.httpClient().Do(hreq)
    if err != nil { return "", err }
    defer res.Body.Close()
    if res.StatusCode < 200 || res.StatusCode >= 300 {
        var eresp map[string]any
        _ = json.NewDecoder(res.Body).Decode(&eresp)
        return "", &StatusError{Code: res.StatusCode, Body: eresp}
    }
    var out struct{
        Candidates []struct{
            Content geminiContent `json:"content"`
        } `json:"candidates"`
    }
    if err := json.NewDecoder(res.Body).Decode(&out); err != nil { return "", fmt.Errorf("decode gemini response: %w", err) }
    // blocked prompts come back with no candidates; that is an empty answer, not a failure
    if len(out.Candidates) == 0 { return "", nil }
    var sb strings.Builder
    for _, p := range out.Candidates[0].Content.Parts { sb.WriteString(p.Text) }
    return sb.String(), nil
}

func (c *GeminiHTTPClient) endpoint(model string) string {
    base := strings.TrimRight(c.BaseURL, "/")
    if base == "" { base = DefaultGeminiBaseURL }
    return fmt.Sprintf("%s/models/%s:generateContent?key=%s", base, url.PathEscape(model), url.QueryEscape(c.APIKey))
}

func (c *GeminiHTTPClient) httpClient() *http.Client {
    if c.HTTP != nil { return c.HTTP }
    return http.DefaultClient
}
