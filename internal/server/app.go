// Package server initializes and runs the chat application: it opens the
// database, runs migrations, wires the storage driver and the HTTP surface,
// and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cofre/internal/logging"
	"cofre/internal/server/config"
	"cofre/internal/server/repositories/repomanager"
	"cofre/internal/server/services"
	"cofre/internal/server/session"
	"cofre/internal/server/storage"
	"cofre/internal/server/web"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	store   storage.ObjectStore
	handler http.Handler
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := repomanager.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	store := storage.NewStore(cfg)
	chat := services.NewChatService(rm.Messages(db), store, logger)
	sessions := session.NewManager(cfg.SessionKey, cfg.SessionTTL)

	h, err := web.NewHandler(cfg, sessions, chat, logger)
	if err != nil {
		return nil, fmt.Errorf("handler init error: %w", err)
	}

	return &App{config: cfg, logger: logger, db: db, store: store, handler: h.Routes()}, nil
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

// probeStorage lists the attachment bucket once at startup. Reachability of
// the object store is reported but never fatal; the chat degrades to
// text-only when storage is down.
func (app *App) probeStorage(ctx context.Context) {
	objects, err := app.store.List(ctx)
	if err != nil {
		app.logger.Warn(ctx, "object storage unreachable", "error", err.Error())
		return
	}
	app.logger.Info(ctx, "object storage reachable", "objects", len(objects))
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "address", app.config.Addr)

	app.initSignalHandler(cancelFunc)
	app.probeStorage(ctx)

	srv := &http.Server{
		Addr:              app.config.Addr,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "http server error", "error", err.Error())
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	app.logger.Info(ctx, "App stopped")
}
