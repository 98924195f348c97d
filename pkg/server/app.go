package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"PickRank/pkg/config"
	xhttp "PickRank/pkg/http"
	applogger "PickRank/pkg/logger"
)

// App encapsulates the service lifecycle: serve until a signal, then stop the
// HTTP server and release infrastructure clients.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
	closers    []io.Closer
}

// New creates a new App. Nil closers are ignored.
func New(cfg *config.Config, log *applogger.Logger, httpServer *xhttp.Server, closers ...io.Closer) *App {
	a := &App{cfg: cfg, log: log, httpServer: httpServer}
	for _, c := range closers {
		if c != nil {
			a.closers = append(a.closers, c)
		}
	}
	return a
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("app.started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Strings("watchlist", a.cfg.Picks.Watchlist),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	err := a.httpServer.Stop(context.Background())
	if err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	for _, c := range a.closers {
		if cerr := c.Close(); cerr != nil {
			a.log.Warn("close error", applogger.Error(cerr))
		}
	}

	a.log.Info("shutdown complete")
	return err
}
