package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Options selects the output format and the optional Sentry sink.
type Options struct {
	AppName     string
	Environment string
	Development bool
	SentryDSN   string
}

var sentryEnabled bool

// Init installs the default slog logger.
// Development logs text at debug level, everything else JSON at info.
// With a Sentry DSN, error records are also reported to Sentry.
func Init(opts Options) *slog.Logger {
	handlers := []slog.Handler{stdoutHandler(opts.Development)}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			Environment:      opts.Environment,
			ServerName:       opts.AppName,
			TracesSampleRate: 0,
		})
		if err != nil {
			slog.Warn("sentry disabled", "error", err)
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
			sentryEnabled = true
		}
	}

	handler := handlers[0]
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	}

	log := slog.New(handler).With("app", opts.AppName, "env", opts.Environment)
	slog.SetDefault(log)
	return log
}

func stdoutHandler(dev bool) slog.Handler {
	if dev {
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
}

// Flush waits for buffered Sentry events before the process exits.
func Flush() {
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}
