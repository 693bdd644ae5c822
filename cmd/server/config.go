package main

import (
	"fmt"

	"github.com/seedstage/mentorship-api/internal/config"
)

// loadAppConfig loads the application configuration from environment
// variables and an optional .env file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}
