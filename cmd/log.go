package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// newLogger creates the diagnostic logger, writing human readable lines to w.
func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger(), nil
}
