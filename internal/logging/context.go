// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context keys for logging.
type contextKey string

const (
	// runIDKey is the context key for the run ID.
	runIDKey contextKey = "run_id"

	// loggerKey is the context key for storing a logger instance.
	loggerKey contextKey = "logger"
)

// GenerateRunID creates a new unique run ID.
// The full UUID is kept because it also names the run in the summary file.
func GenerateRunID() string {
	return uuid.New().String()
}

// ContextWithRunID returns a new context with the given run ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// ContextWithNewRunID returns a context with a newly generated run ID.
//
//	ctx = logging.ContextWithNewRunID(ctx)
func ContextWithNewRunID(ctx context.Context) context.Context {
	return ContextWithRunID(ctx, GenerateRunID())
}

// RunIDFromContext retrieves the run ID from context.
// Returns empty string if not present.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithLogger stores a logger in the context.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext retrieves a logger from context.
// Returns the global logger if no logger is stored in context.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns a logger with the run ID automatically added.
//
//	logging.Ctx(ctx).Info().Msg("Itemsets mined")
//	// Output: {"level":"info","run_id":"8f0c...","message":"Itemsets mined"}
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := LoggerFromContext(ctx)
	contextLogger := logger.With().Logger()

	if runID := RunIDFromContext(ctx); runID != "" {
		contextLogger = contextLogger.With().Str("run_id", runID).Logger()
	}

	return &contextLogger
}

// WithComponent creates a child of the context logger with a component field.
//
//	logger := logging.WithComponent(ctx, "analysis")
//	logger.Info().Msg("Pipeline started")
func WithComponent(ctx context.Context, component string) zerolog.Logger {
	return Ctx(ctx).With().Str("component", component).Logger()
}
