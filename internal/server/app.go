// Package server initializes and runs the PassGuard server: it opens the
// database, applies migrations, loads the breach corpus once before serving,
// wires the services, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mzaytsev/passguard/internal/analyzer"
	"github.com/mzaytsev/passguard/internal/commentary"
	"github.com/mzaytsev/passguard/internal/logging"
	"github.com/mzaytsev/passguard/internal/oracle"
	"github.com/mzaytsev/passguard/internal/server/config"
	"github.com/mzaytsev/passguard/internal/server/httpapi"
	"github.com/mzaytsev/passguard/internal/server/repositories/repomanager"
	"github.com/mzaytsev/passguard/internal/server/services"
	"github.com/mzaytsev/passguard/internal/session"
)

const sessionPurgeInterval = 5 * time.Minute

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	sessions *session.Store
	analyzer *analyzer.Analyzer
	users    *services.UserService
	vault    *services.VaultService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// The corpus is loaded once and read-only afterwards. A failed load
	// falls back to a small built-in set, never a startup failure.
	sources := []oracle.Source{}
	if cfg.S3RootUser != "" {
		sources = append(sources, oracle.NewS3Source(oracle.S3Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Key:          cfg.S3CorpusKey,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		}))
	}
	sources = append(sources, oracle.FileSource{Path: cfg.CorpusPath})
	o := oracle.Load(ctx, logger, cfg.OracleSampleCap, sources...)

	commentator := commentary.NewClient(commentary.Config{
		URL:     cfg.CommentaryURL,
		APIKey:  cfg.CommentaryAPIKey,
		Model:   cfg.CommentaryModel,
		Timeout: cfg.CommentaryTimeout,
	}, logger)

	sessions := session.NewStore(cfg.SessionLifetime)

	return &App{
		config:   cfg,
		logger:   logger,
		db:       db,
		sessions: sessions,
		analyzer: analyzer.New(o, commentator, logger),
		users:    services.NewUserService(db, rm, sessions, cfg),
		vault:    services.NewVaultService(db, rm, logger),
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
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger,
		app.analyzer, app.users, app.vault, app.sessions, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startSessionJanitor drops expired sessions so their master secrets do not
// linger in memory.
func (app *App) startSessionJanitor(ctx context.Context) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.sessions.Purge(); n > 0 {
				app.logger.Debug(ctx, "purged expired sessions", "count", n)
			}
		}
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

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startSessionJanitor(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
}
