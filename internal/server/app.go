// Package server initializes and runs the TaskKeeper application: it
// wires configuration, logging, the document store, the services, and
// the HTTP server, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avelkovs/taskkeeper/internal/logging"
	"github.com/avelkovs/taskkeeper/internal/server/api"
	"github.com/avelkovs/taskkeeper/internal/server/config"
	"github.com/avelkovs/taskkeeper/internal/server/services"
	"github.com/avelkovs/taskkeeper/internal/server/shared/db"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       db.RepositoryManager
	userService *services.UserService
	taskService *services.TaskService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	store, err := db.NewMongoRepositoryManager(ctx, cfg.DatabaseURI, cfg.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(store.Users(), cfg)
	ts := services.NewTaskService(store.Tasks())

	return &App{
		config:      cfg,
		logger:      logger,
		store:       store,
		userService: us,
		taskService: ts,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := api.NewServer(app.config.Addr, app.logger, app.userService, app.taskService, app.store, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "closing store", "error", err.Error())
	}
}
