// Package server initializes and runs the QuickNotes API server.
// It opens the configured store, applies migrations, wires services into the
// REST layer and handles graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/quicknotes/internal/logging"
	"github.com/dmitrijs2005/quicknotes/internal/server/auth"
	"github.com/dmitrijs2005/quicknotes/internal/server/config"
	"github.com/dmitrijs2005/quicknotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/quicknotes/internal/server/rest"
	"github.com/dmitrijs2005/quicknotes/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       repomanager.RepositoryManager
	authService *services.AuthService
	noteService *services.NoteService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	store, err := repomanager.New(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return newApp(c, logger, store, auth.NewGoogleVerifier(c.GoogleClientID)), nil
}

func newApp(c *config.Config, l logging.Logger, store repomanager.RepositoryManager, google auth.GoogleVerifier) *App {
	return &App{
		config:      c,
		logger:      l,
		store:       store,
		authService: services.NewAuthService(store, google, c),
		noteService: services.NewNoteService(store),
	}
}

// Run blocks until ctx is cancelled, a termination signal arrives or the
// HTTP server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.store.Close(); err != nil {
			app.logger.Error(ctx, "closing store", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")
	app.warnInsecureDefaults(ctx)

	if err := app.store.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	s := rest.NewHTTPServer(app.config, app.logger, app.authService, app.noteService, app.store)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			runErr = err
		}
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return runErr
}

func (app *App) warnInsecureDefaults(ctx context.Context) {
	if app.config.SecretKey == config.DefaultSecretKey {
		app.logger.Warn(ctx, "using the default JWT secret; set JWT_SECRET or -s in production")
	}
	if app.config.GoogleClientID == "" {
		app.logger.Warn(ctx, "GOOGLE_CLIENT_ID is not set; Google sign-in will be rejected")
	}
}
