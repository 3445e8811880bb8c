package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/itomysh95/task-manager-project/internal/config"
	"github.com/itomysh95/task-manager-project/internal/events"
	"github.com/itomysh95/task-manager-project/internal/notify"
	"github.com/itomysh95/task-manager-project/internal/platform/postgres"
	"github.com/itomysh95/task-manager-project/internal/platform/sendgrid"
	"github.com/itomysh95/task-manager-project/internal/service"
	"github.com/itomysh95/task-manager-project/internal/service/auth"
	"github.com/itomysh95/task-manager-project/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	userService    *service.UserService
	taskService    *service.TaskService
	avatarService  *service.AvatarService

	// Event system and background notification delivery
	eventEmitter events.EventEmitter
	dispatcher   *notify.Dispatcher
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// Notification pipeline: account events flow through the in-memory
	// emitter into the dispatcher, which delivers mail on worker
	// goroutines so requests never wait on the mail provider.
	mailSender := sendgrid.NewSender(cfg.Email, logger)
	app.dispatcher = notify.NewDispatcher(mailSender, notify.DefaultDispatcherConfig(), logger)
	app.dispatcher.Start()

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(app.dispatcher)
	app.eventEmitter = emitter

	app.userService = service.NewUserService(
		db,
		app.userStore,
		app.taskStore,
		app.passwordHasher,
		app.jwtService,
		app.eventEmitter,
		logger,
	)
	app.taskService = service.NewTaskService(app.taskStore, logger)
	app.avatarService = service.NewAvatarService(app.userStore, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop the dispatcher first so queued notifications drain before the
	// database goes away.
	if app.dispatcher != nil {
		app.dispatcher.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
