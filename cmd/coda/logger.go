package main

import (
	"fmt"

	"github.com/fwojciec/coda"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a JSON file logger. With no path it returns a no-op
// logger so diagnostics never mix with the conversation on stdout.
func newLogger(path, level string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: CODA_LOG_LEVEL: %w", coda.ErrConfiguration, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: open log file: %w", coda.ErrConfiguration, err)
	}
	return logger.Named("coda"), nil
}
