package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

type Options struct {
	// Dev switches to text output at debug level.
	Dev bool
	// SentryDSN, when set, also ships error records to Sentry.
	SentryDSN   string
	Environment string
}

// Init installs the process-wide logger.
func Init(opts Options) {
	handlerOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var stdout slog.Handler
	if opts.Dev {
		handlerOpts.Level = slog.LevelDebug
		stdout = slog.NewTextHandler(os.Stdout, handlerOpts)
	} else {
		stdout = slog.NewJSONHandler(os.Stdout, handlerOpts)
	}

	handler := stdout
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			Environment:      opts.Environment,
			TracesSampleRate: 0.2,
		})
		if err != nil {
			slog.New(stdout).Warn("sentry disabled", "error", err)
		} else {
			handler = slogmulti.Fanout(stdout, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		}
	}

	Log = slog.New(handler).With("app", "skipjar")
	slog.SetDefault(Log)
}

// Flush waits for buffered Sentry events. Safe to call without Sentry.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
