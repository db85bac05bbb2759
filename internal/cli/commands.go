package cli

import (
    "bytes"
    "fmt"
    "io"
    "strings"
    "time"

    "github.com/spf13/cobra"

    "github.com/example/research-institute/internal/app"
    "github.com/example/research-institute/internal/consult"
    "github.com/example/research-institute/internal/page"
    "github.com/example/research-institute/internal/tui"
    "github.com/example/research-institute/internal/widget"
)

var chatCmd = &cobra.Command{
    Use:   "chat",
    Short: "Open the consultation chat in the terminal",
    Args:  cobra.NoArgs,
    RunE:  runChat,
}

var askCmd = &cobra.Command{
    Use:   "ask <prompt...>",
    Short: "Ask the Research Strategist a single question",
    Args:  cobra.MinimumNArgs(1),
    RunE:  runAsk,
}

var linksCmd = &cobra.Command{
    Use:   "links",
    Short: "List the contact links on the rendered page",
    Args:  cobra.NoArgs,
    RunE:  runLinks,
}

func runChat(cmd *cobra.Command, args []string) error {
    cfg, log, closer, err := setup()
    if err != nil { return err }
    defer closer.Close()

    // stderr shares the terminal with the chat screen
    if cfg.Logging.Output == "stderr" && !verbose { log.SetOutput(io.Discard) }

    ch := cfg.Contact.Channel()
    w := widget.New(app.NewConsultant(cfg, log), widget.WithGreeting(consult.Greeting(ch)))
    return tui.Run(cmd.Context(), w, "Research Architect AI")
}

func runAsk(cmd *cobra.Command, args []string) error {
    cfg, log, closer, err := setup()
    if err != nil { return err }
    defer closer.Close()

    prompt := strings.TrimSpace(strings.Join(args, " "))
    if prompt == "" { return fmt.Errorf("prompt is blank") }
    reply := app.NewConsultant(cfg, log).Consult(cmd.Context(), prompt)
    fmt.Fprintln(cmd.OutOrStdout(), reply)
    return nil
}

func runLinks(cmd *cobra.Command, args []string) error {
    cfg, _, closer, err := setup()
    if err != nil { return err }
    defer closer.Close()

    p, err := page.New(page.DefaultContent(), cfg.Contact.Channel())
    if err != nil { return err }
    var buf bytes.Buffer
    if err := p.Render(&buf, time.Now()); err != nil { return fmt.Errorf("rendering page: %w", err) }
    links, err := page.ContactLinks(&buf)
    if err != nil { return err }
    for _, l := range links {
        fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", l.Text, l.Href)
    }
    return nil
}
