package main

import (
	"fmt"
	"log/slog"

	"github.com/seedstage/mentorship-api/internal/config"
	"github.com/seedstage/mentorship-api/internal/platform/logger"
)

// setupAppLogger configures the structured logger from server settings and
// installs it as the process-wide default.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("setting up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("semantic_scoring_enabled", cfg.AI.GeminiAPIKey != ""),
	)

	return appLogger, nil
}
