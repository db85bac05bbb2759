// Package cli implements the consult command line.
package cli

import (
    "context"
    "fmt"
    "io"
    "os"
    "os/signal"
    "syscall"

    "github.com/sirupsen/logrus"
    "github.com/spf13/cobra"

    "github.com/example/research-institute/internal/config"
    "github.com/example/research-institute/internal/logging"
)

var (
    cfgFile string
    verbose bool
)

var rootCmd = &cobra.Command{
    Use:           "consult",
    Short:         "Research consultation from the terminal",
    Long:          "consult talks to the institute's Research Strategist: an interactive chat, a one-shot question, or an audit of the page's contact links.",
    SilenceUsage:  true,
    SilenceErrors: true,
}

func init() {
    rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default $CONSULT_CONFIG)")
    rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

    rootCmd.AddCommand(chatCmd)
    rootCmd.AddCommand(askCmd)
    rootCmd.AddCommand(linksCmd)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
    rootCmd.Version = version
    rootCmd.SetVersionTemplate(fmt.Sprintf("consult %s (commit: %s)\n", version, commit))
}

// Execute runs the root command.
func Execute() {
    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()
    if err := rootCmd.ExecuteContext(ctx); err != nil {
        stop()
        fmt.Fprintln(os.Stderr, "error:", err)
        os.Exit(1)
    }
}

// setup loads configuration and configures logging. Logs go to stderr unless
// a file is configured, so they never mix with command output.
func setup() (*config.Config, *logrus.Logger, io.Closer, error) {
    cfg, err := config.Load(cfgFile)
    if err != nil { return nil, nil, nil, fmt.Errorf("loading config: %w", err) }
    if cfg.Logging.Output == "" || cfg.Logging.Output == "stdout" { cfg.Logging.Output = "stderr" }
    if verbose { cfg.Logging.Level = "debug" }
    log := logrus.New()
    closer := logging.Setup(log, cfg.Logging)
    return cfg, log, closer, nil
}
