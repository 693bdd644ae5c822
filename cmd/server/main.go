// Package main implements the entry point for the mentorship API server,
// which matches incubator startups with mentors and tracks the resulting
// mentorship lifecycle.
package main

import (
	"context"
	"log"
)

// main initializes configuration, logging, the database connection, and
// the application dependency graph, then starts the HTTP server.
func main() {
	cfg, err := loadAppConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := runStartupMigrations(db, logger); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
