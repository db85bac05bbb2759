package llm

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"
)

func TestGeminiHTTP_GenerateText(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/models/gemini-test:generateContent" {
            t.Errorf("unexpected path: %s", r.URL.Path)
        }
        if r.URL.Query().Get("key") != "k-123" {
            t.Errorf("missing api key, got %q", r.URL.Query().Get("key"))
        }
        var body struct {
            Contents          []geminiContent `json:"contents"`
            SystemInstruction *geminiContent  `json:"systemInstruction"`
        }
        if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
            t.Fatalf("decoding request: %v", err)
        }
        if len(body.Contents) != 1 || body.Contents[0].Parts[0].Text != "I need a thesis topic" {
            t.Errorf("unexpected contents: %+v", body.Contents)
        }
        if body.SystemInstruction == nil || body.SystemInstruction.Parts[0].Text != "be helpful" {
            t.Errorf("unexpected system instruction: %+v", body.SystemInstruction)
        }
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Here is "},{"text":"a topic idea..."}]}}]}`)) //nolint:errcheck
    }))
    defer srv.Close()

    c := &GeminiHTTPClient{APIKey: "k-123", BaseURL: srv.URL + "/"}
    got, err := c.GenerateText(context.Background(), Request{Model: "gemini-test", Prompt: "I need a thesis topic", SystemInstruction: "be helpful"})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if got != "Here is a topic idea..." {
        t.Errorf("got %q", got)
    }
}

func TestGeminiHTTP_NoCandidatesIsEmpty(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`)) //nolint:errcheck
    }))
    defer srv.Close()

    c := &GeminiHTTPClient{APIKey: "k", BaseURL: srv.URL}
    got, err := c.GenerateText(context.Background(), Request{Model: "m", Prompt: "p"})
    if err != nil {
        t.Fatalf("expected no error, got %v", err)
    }
    if got != "" {
        t.Errorf("expected empty answer, got %q", got)
    }
}

func TestGeminiHTTP_StatusError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusForbidden)
        w.Write([]byte(`{"error":{"message":"API key not valid"}}`)) //nolint:errcheck
    }))
    defer srv.Close()

    c := &GeminiHTTPClient{APIKey: "bad", BaseURL: srv.URL}
    _, err := c.GenerateText(context.Background(), Request{Model: "m", Prompt: "p"})
    var se *StatusError
    if !errors.As(err, &se) {
        t.Fatalf("expected StatusError, got %v", err)
    }
    if se.Code != http.StatusForbidden {
        t.Errorf("code = %d", se.Code)
    }
}

func TestGeminiHTTP_DefaultEndpoint(t *testing.T) {
    c := &GeminiHTTPClient{APIKey: "a b"}
    want := DefaultGeminiBaseURL + "/models/gemini-3-flash-preview:generateContent?key=a+b"
    if got := c.endpoint("gemini-3-flash-preview"); got != want {
        t.Errorf("endpoint = %s, want %s", got, want)
    }
}

func TestNew(t *testing.T) {
    for transport, want := range map[string]string{"": "*llm.GeminiClient", "SDK": "*llm.GeminiClient", "http": "*llm.GeminiHTTPClient", "mock": "*llm.MockClient"} {
        c, err := New(transport, "k", "", nil)
        if err != nil {
            t.Fatalf("New(%q): %v", transport, err)
        }
        if got := typeName(c); got != want {
            t.Errorf("New(%q) = %s, want %s", transport, got, want)
        }
    }
    if _, err := New("carrier-pigeon", "k", "", nil); err == nil {
        t.Error("expected error for unknown transport")
    }
}

func TestMockClient_CountsCalls(t *testing.T) {
    m := &MockClient{Reply: "ok"}
    for i := 0; i < 2; i++ {
        if _, err := m.GenerateText(context.Background(), Request{Prompt: "p"}); err != nil {
            t.Fatalf("unexpected error: %v", err)
        }
    }
    if n := len(m.Calls()); n != 2 {
        t.Errorf("calls = %d", n)
    }
}

func typeName(v any) string {
    switch v.(type) {
    case *GeminiClient:
        return "*llm.GeminiClient"
    case *GeminiHTTPClient:
        return "*llm.GeminiHTTPClient"
    case *MockClient:
        return "*llm.MockClient"
    }
    return "unknown"
}

func TestNew_TargetPerTransport(t *testing.T) {
    c, err := New(TransportSDK, "k", "proxy.example:443", nil)
    if err != nil {
        t.Fatalf("New: %v", err)
    }
    if sdk := c.(*GeminiClient); sdk.Endpoint != "proxy.example:443" {
        t.Errorf("sdk endpoint = %q", sdk.Endpoint)
    }
    c, err = New(TransportHTTP, "k", "https://proxy.example/v1beta/", nil)
    if err != nil {
        t.Fatalf("New: %v", err)
    }
    if rest := c.(*GeminiHTTPClient); rest.BaseURL != "https://proxy.example/v1beta" {
        t.Errorf("rest base = %q", rest.BaseURL)
    }
}
