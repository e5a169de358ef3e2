// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects level and encoding.
type Options struct {
	Level   string // debug, info, warn, error
	Format  string // auto, json, console
	Verbose bool   // forces debug
}

// New builds a logger writing to stderr. The auto format picks the console
// encoder when stdout is a terminal and JSON otherwise.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	if consoleFormat(opts.Format, isatty.IsTerminal(os.Stdout.Fd())) {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func consoleFormat(format string, terminal bool) bool {
	switch format {
	case "console":
		return true
	case "json":
		return false
	default:
		return terminal
	}
}
