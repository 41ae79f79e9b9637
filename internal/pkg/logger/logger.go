package logger

import (
	"io"
	"log/slog"

	"github.com/go-chi/httplog/v3"
)

// New returns a JSON logger in ECS field layout, tagged with the service identity.
func New(w io.Writer, level slog.Level, app, version, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}
