package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/sirupsen/logrus"

    "github.com/example/research-institute/internal/api"
    "github.com/example/research-institute/internal/app"
    "github.com/example/research-institute/internal/config"
    "github.com/example/research-institute/internal/consult"
    "github.com/example/research-institute/internal/desk"
    "github.com/example/research-institute/internal/logging"
    "github.com/example/research-institute/internal/page"
)

func main() {
    log := logrus.StandardLogger()
    cfg, err := config.Load("")
    if err != nil { log.Fatalf("config: %v", err) }
    closer := logging.Setup(log, cfg.Logging)
    defer closer.Close()

    ch := cfg.Contact.Channel()
    consultant := app.NewConsultant(cfg, log)
    d := desk.New(consultant, consult.Greeting(ch))
    d.Log = log
    p, err := page.New(page.DefaultContent(), ch)
    if err != nil { log.Fatalf("page: %v", err) }

    mux := http.NewServeMux()
    api.NewServer(d, consultant, p, log).RegisterRoutes(mux)
    srv := &http.Server{Addr: cfg.Server.Addr(), Handler: api.LogRequests(log, api.CORS(cfg.Server.CORSOrigin, mux))}

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()
    go sweep(ctx, d, cfg.Server.SessionIdle)

    go func() {
        <-ctx.Done()
        shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        srv.Shutdown(shutdownCtx) //nolint:errcheck
    }()

    log.WithFields(logrus.Fields{"addr": srv.Addr, "model": cfg.Gemini.Model, "transport": cfg.Gemini.Transport}).Info("server listening")
    if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
        log.Fatal(err)
    }
}

// sweep unmounts widgets whose visitors have gone away.
func sweep(ctx context.Context, d *desk.Desk, idle time.Duration) {
    if idle <= 0 { return }
    ticker := time.NewTicker(idle / 2)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            d.Sweep(idle)
        }
    }
}
