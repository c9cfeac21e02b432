package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process wide logger. It writes JSON to stderr until Init is
// called.
var Log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configures Log for the given environment: human readable console
// output at debug level in development, JSON at info level elsewhere.
func Init(env string) {
	Log = New(os.Stderr, env)
}

func New(w io.Writer, env string) zerolog.Logger {
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}
