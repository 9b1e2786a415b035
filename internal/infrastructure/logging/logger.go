// Package logging configures the structured logger shared by the
// launcher components.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. Console output goes to stderr so
// it never interleaves with the runtime's own stdout.
func New(app string, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}

// NewWriter builds a logger against an arbitrary sink, mainly for
// tests.
func NewWriter(app string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Str("app", app).Logger()
}
