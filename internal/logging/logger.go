package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	Level string // debug, info, warn, error
	Dev   bool   // console encoder with colors instead of JSON
	// OutputPath replaces stderr, e.g. a log file while the TUI owns the terminal.
	OutputPath string
}

// New builds a zap logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(orDefault(opts.Level, "info"))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	config := zap.NewProductionConfig()
	if opts.Dev {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(level)

	if opts.OutputPath != "" {
		config.OutputPaths = []string{opts.OutputPath}
		config.ErrorOutputPaths = []string{opts.OutputPath}
		// No colors in files
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return config.Build()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
