package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/seedstage/mentorship-api/internal/config"
	"github.com/seedstage/mentorship-api/internal/domain/matching"
	"github.com/seedstage/mentorship-api/internal/events"
	"github.com/seedstage/mentorship-api/internal/platform/gemini"
	"github.com/seedstage/mentorship-api/internal/platform/postgres"
	"github.com/seedstage/mentorship-api/internal/semantic"
	"github.com/seedstage/mentorship-api/internal/service"
	"github.com/seedstage/mentorship-api/internal/task"
)

// application holds the fully wired dependency graph of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	mentorStore  *postgres.PostgresMentorStore
	requestStore *postgres.PostgresRequestStore

	semanticClient semantic.Client
	eventEmitter   *events.InMemoryEventEmitter
	taskQueue      *task.TaskQueue
	workerPool     *task.WorkerPool

	mentorshipService service.MentorshipService
}

// newApplication wires stores, the semantic client, the matching engine,
// the notification pipeline, and the mentorship service.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	app.mentorStore = postgres.NewPostgresMentorStore(db, log)
	app.requestStore = postgres.NewPostgresRequestStore(db, log)

	if cfg.AI.GeminiAPIKey != "" {
		client, err := gemini.NewGeminiClient(ctx, log.With("component", "gemini_client"), cfg.AI)
		if err != nil {
			return nil, fmt.Errorf("creating semantic client: %w", err)
		}
		app.semanticClient = client
	} else {
		log.Info("Semantic scoring disabled: no Gemini API key configured")
		app.semanticClient = semantic.Disabled{}
	}

	matcher := matching.NewServiceWithParams(matching.NewParams(matching.ParamsConfig{
		MaxResults: cfg.Matching.MaxResults,
		MinScore:   cfg.Matching.MinScore,
	}))

	app.eventEmitter = events.NewInMemoryEventEmitter(log)
	app.taskQueue = task.NewTaskQueue(cfg.Task.QueueSize, log)
	sink := task.NewLogSink(log)
	app.eventEmitter.RegisterHandler(task.NewNotificationEventHandler(app.taskQueue, sink, log))

	app.workerPool = task.NewWorkerPool(app.taskQueue, task.WorkerPoolConfig{
		WorkerCount: cfg.Task.WorkerCount,
	}, log)
	app.workerPool.Start()

	mentorRepo := service.NewMentorRepositoryAdapter(app.mentorStore, db)
	requestRepo := service.NewRequestRepositoryAdapter(app.requestStore, db)

	mentorshipService, err := service.NewMentorshipService(
		requestRepo,
		mentorRepo,
		matcher,
		app.semanticClient,
		app.eventEmitter,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("creating mentorship service: %w", err)
	}
	app.mentorshipService = mentorshipService

	return app, nil
}

// Run builds the router and serves HTTP until the process receives a
// shutdown signal.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()
	return app.startHTTPServer(ctx, router)
}

// cleanup releases background workers and the database connection pool.
// Closing the queue first lets in-flight notification tasks drain before
// the workers stop.
func (app *application) cleanup() {
	app.taskQueue.Close()
	app.workerPool.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Warn("Failed to close database connection pool",
			slog.String("error", err.Error()))
	}
}
