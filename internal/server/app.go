// Package server wires the backend together: PostgreSQL with migrations,
// the services, the gin HTTP API and the gRPC health endpoint.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/server/config"
	gs "github.com/dmitrijs2005/jobkeeper/internal/server/grpc"
	"github.com/dmitrijs2005/jobkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/jobkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// seams for tests
var (
	sqlOpen        = sql.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	router *gin.Engine
	grpc   *gs.GRPCServer
}

// NewApp connects to the database, applies migrations and builds the
// HTTP and gRPC servers. The caller owns Close.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := sqlOpen("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	users := services.NewUserService(db, rm, cfg)
	notes := services.NewJobNoteService(db, rm)
	attachments := services.NewAttachmentService(cfg)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	h := httpapi.NewHandler(users, notes, attachments, logger, m)
	router := httpapi.NewRouter(h, httpapi.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Gatherer:           reg,
		Ping:               db.PingContext,
	})

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
		grpc:   gs.NewGRPCServer(cfg.EndpointAddrGRPC, logger, m, db.PingContext),
	}, nil
}

func (app *App) runHTTP(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.config.EndpointAddrHTTP,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddrHTTP)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Run serves HTTP and gRPC until ctx is cancelled or either server fails;
// a failure stops the other one too.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.runHTTP(ctx) })
	g.Go(func() error { return app.grpc.Run(ctx) })

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	}
	return err
}

func (app *App) Close() error {
	return app.db.Close()
}
