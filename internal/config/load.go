package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for all environment variables read by Load,
// e.g. MENTORSHIP_SERVER_PORT or MENTORSHIP_DATABASE_URL.
const envPrefix = "MENTORSHIP"

// Load configuration from environment variables and optionally a .env file.
// Environment variables already set in the process take precedence over
// values from the .env file. Returns a populated Config struct or an error
// if loading/validation fails.
func Load() (*Config, error) {
	// Preload a .env file if one exists. Existing environment variables
	// are never overwritten.
	if envMap, err := godotenv.Read(".env"); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("ai.embedding_model", "gemini-embedding-001")
	v.SetDefault("ai.summary_model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 15)
	v.SetDefault("ai.max_retries", 2)
	v.SetDefault("matching.max_results", 10)
	v.SetDefault("matching.min_score", 0)
	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)

	// Configure environment variables with the MENTORSHIP_ prefix
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind variables that have no default, so AutomaticEnv
	// picks them up during Unmarshal.
	for _, key := range []string{
		"database.url",
		"auth.jwt_secret",
		"ai.gemini_api_key",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the loaded configuration against the struct validation
// tags and returns a descriptive error for the first failing field.
func validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return fmt.Errorf(
				"invalid configuration: field %s failed on the %q rule",
				fe.Namespace(), fe.Tag(),
			)
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
