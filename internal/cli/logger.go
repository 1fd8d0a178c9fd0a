package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the console logger shared by the commands. Verbose
// switches the level from warn to debug.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
