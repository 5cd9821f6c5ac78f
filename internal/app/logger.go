package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/httplog/v3"
	"github.com/leavehub/leave-backend-go/internal/config"
)

// Version is overridden at build time with -ldflags "-X ...app.Version=...".
var Version = "dev"

const appName = "leave-backend"

// NewLogger builds the ECS-formatted JSON logger shared by the request
// logger and the rest of the process.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(!cfg.IsDevelopment())
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("env", cfg.App.Env),
	)
}

// ParseLevel maps LOG_LEVEL onto slog levels, falling back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
