package logx

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Log is the shared logger used throughout the project.
// It writes to stderr; stdout is reserved for command output.
var Log = New(os.Stderr)

// New returns a human-readable logger writing to w.
// Colour is used only when w is a terminal and NO_COLOR is unset.
func New(w io.Writer) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok && strings.TrimSpace(os.Getenv("NO_COLOR")) == "" {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

// Configure sets the global log level from a string.
func Configure(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "all", "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "none", "off", "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
