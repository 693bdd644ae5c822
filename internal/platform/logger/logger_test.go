package logger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/seedstage/mentorship-api/internal/config"
	"github.com/seedstage/mentorship-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug_level", logLevel: "debug"},
		{name: "info_level", logLevel: "info"},
		{name: "warn_level", logLevel: "warn"},
		{name: "error_level", logLevel: "error"},
		{name: "mixed_case_level", logLevel: "Info"},
		{name: "invalid_level_falls_back_to_info", logLevel: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.Equal(t, log, slog.Default())
		})
	}
}

func TestWithLogger(t *testing.T) {
	t.Run("valid_logger", func(t *testing.T) {
		customLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := logger.WithLogger(context.Background(), customLogger)

		retrievedLogger := logger.FromContext(ctx)
		assert.Equal(t, customLogger, retrievedLogger)
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}

func TestFromContext(t *testing.T) {
	t.Run("context_without_logger_returns_default", func(t *testing.T) {
		assert.Equal(t, slog.Default(), logger.FromContext(context.Background()))
	})

	t.Run("nil_context_returns_default", func(t *testing.T) {
		assert.Equal(t, slog.Default(), logger.FromContext(nil)) //nolint:staticcheck
	})
}

func TestFromContextOrDefault(t *testing.T) {
	defaultLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	customLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{
			name:     "nil_context_returns_default",
			ctx:      nil,
			expected: defaultLogger,
		},
		{
			name:     "context_without_logger_returns_default",
			ctx:      context.Background(),
			expected: defaultLogger,
		},
		{
			name:     "context_with_logger_returns_context_logger",
			ctx:      logger.WithLogger(context.Background(), customLogger),
			expected: customLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := logger.FromContextOrDefault(tt.ctx, defaultLogger)
			assert.Equal(t, tt.expected, result)
		})
	}
}
