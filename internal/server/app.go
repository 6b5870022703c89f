// Package server initializes and runs the identity server. It wires the
// storage backend, the account service and the HTTP API, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/famly-app/identity/internal/logging"
	"github.com/famly-app/identity/internal/server/accounts"
	"github.com/famly-app/identity/internal/server/auth"
	"github.com/famly-app/identity/internal/server/config"
	"github.com/famly-app/identity/internal/server/httpapi"
	"github.com/famly-app/identity/internal/server/shared/db"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	accountService *accounts.Service
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	m, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	service := accounts.NewService(m.Accounts(), auth.NewBcryptHasher(cfg.BcryptCost), cfg)

	return &App{config: cfg, logger: logger, accountService: service}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.accountService, app.config, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
