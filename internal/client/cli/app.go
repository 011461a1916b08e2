package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/client"
	"github.com/dmitrijs2005/jobkeeper/internal/client/config"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/records"
	"github.com/dmitrijs2005/jobkeeper/internal/client/services"
	"github.com/dmitrijs2005/jobkeeper/internal/filex"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
)

const databaseFile = "jobkeeper.db"

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	data     *services.DataService
	settings *services.SettingsService
	auth     *services.AuthService
	api      client.Client

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	mu       sync.RWMutex
	mode     Mode
	userName string
}

// NewApp opens the device database under cfg.DataDir, loads the cache and
// prepares the backend client.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, databaseFile))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	api, err := client.NewAPIClient(cfg.ServerURL, cfg.HealthAddr, cfg.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := newApp(cfg, log, records.NewSQLite(db), api, os.Stdin, os.Stdout)
	app.db = db

	if err := app.data.Refresh(ctx); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("load data: %w", err)
	}
	return app, nil
}

func newApp(cfg *config.Config, log logging.Logger, repo *records.Repository, api client.Client, in io.Reader, out io.Writer) *App {
	data := services.NewDataService(repo, log, services.WithMaxAttachments(cfg.MaxAttachments))
	return &App{
		config:   cfg,
		log:      log.With("module", "cli"),
		data:     data,
		settings: services.NewSettingsService(repo.Store()),
		auth:     services.NewAuthService(repo, data, log),
		api:      api,
		reader:   bufio.NewReader(in),
		out:      out,
		now:      time.Now,
		mode:     ModeOffline,
	}
}

func (a *App) Close() error {
	var errs []error
	if a.api != nil {
		errs = append(errs, a.api.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) online() bool {
	return a.Mode() == ModeOnline
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// mode accordingly until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.checkOnline(ctx)
	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.api.Ping(pingCtx)
	cancel()

	if err != nil {
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

func (a *App) status() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := string(a.mode)
	if a.userName != "" {
		s = a.userName + " " + s
	}
	return s
}

// Run starts the watcher and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.printf("Welcome to JobKeeper (type 'help' for commands)\n")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) today() string {
	return a.now().Format(time.DateOnly)
}

func (a *App) userSettings(ctx context.Context) models.UserSettings {
	us, err := a.settings.Get(ctx)
	if err != nil {
		a.log.Warn(ctx, "settings unavailable, using defaults", "error", err)
		return services.DefaultSettings()
	}
	return us
}

func (a *App) money(ctx context.Context, amount float64) string {
	return services.Format(a.userSettings(ctx), amount)
}
