package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// Init configures the global logger. When file is non-empty, output is
// written there and rotated by lumberjack; otherwise logs go to stderr.
func Init(file string, maxSizeMB, maxBackups, maxAgeDays int, compress bool, level string) {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if file != "" {
		out = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   compress,
		}
	}
	logger = zerolog.New(out).With().Timestamp().Logger()
	SetLogLevel(level)
}

// SetLogLevel switches the log level at runtime. Unknown levels fall back
// to info.
func SetLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	logger = logger.Level(lvl)
}

// SetLoggerForTest replaces the global logger. Tests only.
func SetLoggerForTest(l zerolog.Logger) {
	logger = l
}

// Info logs an info message with alternating key/value pairs.
func Info(msg string, kv ...interface{}) {
	emit(logger.Info(), msg, kv)
}

// Warn logs a warning with alternating key/value pairs.
func Warn(msg string, kv ...interface{}) {
	emit(logger.Warn(), msg, kv)
}

// Error logs an error with alternating key/value pairs.
func Error(msg string, kv ...interface{}) {
	emit(logger.Error(), msg, kv)
}

// emit attaches key/value pairs to the event. A dangling key without a
// value is ignored, as are non-string keys.
func emit(ev *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}
