package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
)

// findProjectRoot walks up from the working directory until it finds the
// directory containing go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found walking up from working directory")
		}
		dir = parent
	}
}

// runStartupMigrations applies any pending goose migrations before the
// server starts accepting requests.
func runStartupMigrations(db *sql.DB, log *slog.Logger) error {
	root, err := findProjectRoot()
	if err != nil {
		return fmt.Errorf("locating migrations: %w", err)
	}
	migrationsDir := filepath.Join(root, "internal", "platform", "postgres", "migrations")

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	log.Info("Database migrations applied", slog.String("dir", migrationsDir))
	return nil
}
