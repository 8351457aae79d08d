package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/httplog/v3"
)

// New returns a JSON slog logger in the ECS field schema used by httplog request logs.
func New(app, version, env, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       ParseLevel(level, env),
		ReplaceAttr: httplog.SchemaECS.Concise(false).ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}

// ParseLevel reads debug, info, warn or error. Anything else falls back to
// debug in development and info elsewhere.
func ParseLevel(level, env string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err == nil {
		return l
	}
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Err creates a slog.Attr with the given error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
