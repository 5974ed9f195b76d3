// Package logging configures the process-wide zerolog.Logger used
// throughout the simulation. See SPEC_FULL.md's dropped-dependency notes for
// why this talks to zerolog directly rather than through the
// logiface facade the teacher repo uses elsewhere in the pack: there is
// exactly one sink (the operator's terminal) and no need to swap
// backends, so the facade's indirection buys nothing here.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the root logger. debug widens the level from Info to Debug,
// for verbose election/consensus tracing.
func New(debug bool, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
