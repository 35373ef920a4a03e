package usos

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"hawx.me/code/usos/config"
)

// NewLogger builds the logger described by conf, writing to w. Format "json"
// writes one JSON object per line, anything else writes for a terminal.
func NewLogger(conf config.Logging, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(conf.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	case "disabled", "off":
		level = zerolog.Disabled
	}

	if conf.Format == "json" {
		return zerolog.New(w).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
