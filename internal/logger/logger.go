package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/nitecrawlers/internal/config"
)

const serviceName = "nitecrawlers"

// New builds a logger writing to w: JSON in production, text otherwise.
// Every record carries the service name and the store namespace.
func New(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("service", serviceName, "namespace", cfg.StoreNamespace)
}

// Setup configures the global slog logger for a long-running process
func Setup(cfg *config.Config) *slog.Logger {
	log := New(cfg, os.Stdout)
	slog.SetDefault(log)
	return log
}

// WithRequestID adds request ID to logger context
func WithRequestID(logger *slog.Logger, requestID string) *slog.Logger {
	return logger.With("request_id", requestID)
}
