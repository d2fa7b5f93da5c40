// Package server initializes and runs the console backend: it wires the
// database, application services and the REST endpoint, and handles graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/etfdesk/internal/logging"
	"github.com/dmitrijs2005/etfdesk/internal/server/config"
	"github.com/dmitrijs2005/etfdesk/internal/server/rest"
	"github.com/dmitrijs2005/etfdesk/internal/server/services"
	"github.com/dmitrijs2005/etfdesk/internal/server/shared/db"
)

type App struct {
	config           *config.Config
	logger           logging.Logger
	userService      *services.UserService
	etfService       *services.EtfService
	portfolioService *services.PortfolioService
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(rm.Users(), rm.RefreshTokens(), cfg)
	es := services.NewEtfService(rm.Etfs())
	ps := services.NewPortfolioService(rm.Portfolios(), rm.Etfs())

	return &App{
		config:           cfg,
		logger:           logger,
		userService:      us,
		etfService:       es,
		portfolioService: ps,
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

func (app *App) startRestServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.etfService, app.portfolioService)

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
		app.startRestServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
