// Package server initializes and runs the Reminisce server. It opens the
// database, runs migrations, wires the enrichment clients and services into
// the HTTP API and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/reminisce-care/reminisce/internal/logging"
	"github.com/reminisce-care/reminisce/internal/server/config"
	"github.com/reminisce-care/reminisce/internal/server/enrichment"
	"github.com/reminisce-care/reminisce/internal/server/httpapi"
	"github.com/reminisce-care/reminisce/internal/server/repositories/repomanager"
	"github.com/reminisce-care/reminisce/internal/server/services"
)

// sessionSweepInterval is how often expired sessions are purged.
const sessionSweepInterval = time.Hour

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	httpServer  *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	vision := enrichment.NewAzureVision(cfg.VisionEndpoint, cfg.VisionKey, logger)
	questions := enrichment.NewOpenAIQuestionGenerator(cfg.OpenAIAPIKey, logger)
	speech := enrichment.NewOpenAISpeech(cfg.OpenAIAPIKey)

	scope := services.NewScopeService(db, rm)
	identity := services.NewIdentityService(db, rm, cfg)
	media := services.NewMediaService(cfg, speech)
	memories := services.NewMemoryService(db, rm, scope, media, vision, questions, logger)
	routines := services.NewRoutineService(db, rm, scope)
	medications := services.NewMedicationService(db, rm, scope)
	emergency := services.NewEmergencyService(db, rm, scope)

	httpServer := httpapi.NewServer(identity, memories, routines, medications, emergency, media, logger)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: rm,
		httpServer:  httpServer,
	}, nil
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

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.httpServer.Routes(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "error shutting down http server", "err", err)
		}
	}()

	app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "http server error", "err", err)
		cancelFunc()
	}
}

// startSessionSweeper purges expired sessions periodically so abandoned
// logins do not accumulate.
func (app *App) startSessionSweeper(ctx context.Context) {

	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := app.repomanager.Sessions(app.db).DeleteExpired(ctx); err != nil {
				app.logger.Warn(ctx, "session sweep failed", "err", err)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

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
		app.startSessionSweeper(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		return fmt.Errorf("db close error: %w", err)
	}
	return nil
}
