// Package logger builds the hclog logger used throughout silcolour, with an
// optional size-rotated log file.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Name is the root logger name.
const Name = "silcolour"

// FileConfig holds file logging configuration.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Options configures New.
type Options struct {
	// Level is one of trace, debug, info, warn, error or off.
	Level string

	// Output receives console log lines. Defaults to os.Stderr.
	Output io.Writer

	// File, when its Path is set, additionally writes every line to a
	// rotating log file.
	File FileConfig
}

// Logger wraps an hclog.Logger together with the file sink it owns.
type Logger struct {
	hclog.Logger
	file *lumberjack.Logger
}

// New creates the root logger.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	l := &Logger{}
	if opts.File.Path != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File.Path,
			MaxSize:    opts.File.MaxSizeMB,
			MaxBackups: opts.File.MaxBackups,
			MaxAge:     opts.File.MaxAgeDays,
			Compress:   opts.File.Compress,
			LocalTime:  true,
		}
		out = io.MultiWriter(out, l.file)
	}

	l.Logger = hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Output: out,
		Level:  level,
	})
	return l, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel converts a level name to an hclog.Level. An empty name means
// info.
func ParseLevel(level string) (hclog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return hclog.Trace, nil
	case "debug":
		return hclog.Debug, nil
	case "", "info":
		return hclog.Info, nil
	case "warn", "warning":
		return hclog.Warn, nil
	case "error":
		return hclog.Error, nil
	case "off":
		return hclog.Off, nil
	default:
		return hclog.NoLevel, fmt.Errorf("invalid log level %q (use trace, debug, info, warn, error or off)", level)
	}
}
