package logging

import (
    "io"
    "os"
    "strings"

    "github.com/sirupsen/logrus"

    "github.com/example/research-institute/internal/config"
)

// Setup configures logger from cfg. Bad values fall back to info/stdout with a
// warning rather than failing startup. The returned closer releases a log file,
// if one was opened.
func Setup(logger *logrus.Logger, cfg config.LoggingConfig) io.Closer {
    level, err := logrus.ParseLevel(cfg.Level)
    if err != nil {
        logger.Warnf("invalid log level %q, using info: %v", cfg.Level, err)
        level = logrus.InfoLevel
    }
    logger.SetLevel(level)

    switch strings.ToLower(cfg.Format) {
    case "json":
        logger.SetFormatter(&logrus.JSONFormatter{})
    default:
        logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
    }

    var closer io.Closer = nopCloser{}
    switch strings.ToLower(cfg.Output) {
    case "", "stdout":
        logger.SetOutput(os.Stdout)
    case "stderr":
        logger.SetOutput(os.Stderr)
    default:
        f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
        if err != nil {
            logger.Warnf("failed to open log file %q, using stdout: %v", cfg.Output, err)
            logger.SetOutput(os.Stdout)
        } else {
            logger.SetOutput(f)
            closer = f
        }
    }
    return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
