// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Setup routes the global logger to a size-capped log file, plus a
// console writer when attached to a terminal (useful during bench
// testing on the device).
func Setup(logPath string, console bool) {
	writers := []io.Writer{&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    1,
		MaxBackups: 2,
	}}
	if console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = log.Output(io.MultiWriter(writers...)).
		With().Timestamp().Logger()
}
