// Package server initializes and runs the vault application server.
// It resolves the encryption key, opens the database, applies migrations,
// wires the services and starts the HTTP API with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mkadlec/passvault/internal/cryptox"
	"github.com/mkadlec/passvault/internal/keystore"
	"github.com/mkadlec/passvault/internal/logging"
	"github.com/mkadlec/passvault/internal/server/config"
	"github.com/mkadlec/passvault/internal/server/httpapi"
	"github.com/mkadlec/passvault/internal/server/repositories/repomanager"
	"github.com/mkadlec/passvault/internal/server/services"
	"github.com/mkadlec/passvault/internal/validate"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.Server
}

// NewApp wires the whole server. Key provisioning and migrations run here
// so a misconfigured deployment fails before the listener opens.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	key, err := keystore.Resolve(cfg.EncryptionKey, cfg.IsProduction(), cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("key init error: %w", err)
	}

	cipher, err := cryptox.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init error: %w", err)
	}

	db, err := repomanager.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewSQLRepositoryManager(cfg.DatabaseDSN)

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, rm, validate.Email, validate.Password, cfg)
	cs := services.NewCredentialService(db, rm, cipher)

	srv := httpapi.NewServer(cfg, logger, us, cs)

	return &App{config: cfg, logger: logger, httpServer: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "env", app.config.Environment)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
