package report

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var stderr = struct{ io.Writer }{os.Stderr}

func init() { //nolint:gochecknoinits // tracing is off until requested
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

// InitTrace configures the global zerolog logger used for developer tracing
// of the build pipeline.  Tracing writes to standard error and is disabled
// unless enabled is set.
func InitTrace(enabled bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	w := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = stderr
		w.NoColor = !isatty.IsTerminal(os.Stderr.Fd())
		w.TimeFormat = "15:04:05.999 |"
	})

	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	if enabled {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
}
