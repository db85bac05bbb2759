package consult

import (
    "fmt"
    "os"
    "strings"

    "github.com/example/research-institute/internal/contact"
)

const DefaultModel = "gemini-3-flash-preview"

// SystemInstruction is the persona every request is sent under.
func SystemInstruction(ch contact.Channel) string {
    return fmt.Sprintf(`You are the Global Research Strategist for %s. Your founder is Blessing Omiyale, a prestigious graduate of FUOYE. Your goal is to convert visitors into clients by showcasing expertise in: 1. Academic Project Writing, 2. Market Research, 3. Business Strategy, 4. Data Analysis. Always encourage a final consultation on WhatsApp at %s.`, ch.Organization, ch.Display())
}

// Greeting seeds every new transcript.
func Greeting(ch contact.Channel) string {
    return fmt.Sprintf("Welcome to %s. I'm your Research Strategist. How can I help you navigate your academic or business research today?", ch.Organization)
}

// EnvCredential returns a lookup reading the first non-blank variable among
// names at call time.
func EnvCredential(names ...string) func() string {
    return func() string {
        for _, n := range names {
            if v := strings.TrimSpace(os.Getenv(n)); v != "" { return v }
        }
        return ""
    }
}
