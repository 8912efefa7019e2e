package logger

import (
	"log/slog"
	"os"
)

// Log is the shared application logger. It defaults to a JSON handler so
// packages can log before Init runs (tests, serverless cold starts).
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init configures the production logger.
func Init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	Log = slog.New(handler)
}
