package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"SignalLog/internal/domain/models"
	"SignalLog/internal/usecase"
	"SignalLog/pkg/config"
	xhttp "SignalLog/pkg/http"
	applogger "SignalLog/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	signals    *usecase.SignalLogger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	signals *usecase.SignalLogger,
	srv *xhttp.Server,
) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{
		cfg:        cfg,
		logger:     l,
		signals:    signals,
		httpServer: srv,
	}
}

// Signals exposes the signal logger.
func (a *App) Signals() *usecase.SignalLogger { return a.signals }

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the application and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	a.logger.Info("signal log ready",
		applogger.String("env", a.cfg.Environment),
		applogger.String("path", a.cfg.SignalLog.Path),
		applogger.Int("max_log_size", a.cfg.SignalLog.MaxLogSize),
		applogger.Int("backup_count", a.cfg.SignalLog.BackupCount),
	)

	if a.cfg.Server.Enabled && a.httpServer != nil {
		if err := a.httpServer.Start(); err != nil {
			a.logger.Error("http server start error", applogger.Error(err))
			return err
		}
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	if !a.cfg.Server.Enabled || a.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}
	return nil
}

// ExampleSignals returns the sample signals logged by RunExample.
func ExampleSignals() []models.Signal {
	return []models.Signal{
		{
			"decision":   "BUY",
			"confidence": 85,
			"entry":      1.0855,
			"stop_loss":  1.0820,
			"take_profit": []models.TakeProfitLevel{
				{Level: 1.0890, Weight: 0.5},
				{Level: 1.0925, Weight: 0.3},
				{Level: 1.0960, Weight: 0.2},
			},
			"symbol":    "EURUSD",
			"timeframe": "H1",
			"reasoning": "Breakout above resistance with rising volume",
		},
		{
			"decision":    "SELL",
			"confidence":  70,
			"entry":       1.2710,
			"stop_loss":   1.2750,
			"take_profit": 1.2650,
			"symbol":      "GBPUSD",
			"timeframe":   "M15",
		},
	}
}

// RunExample logs the sample signals and writes each result to w as JSON.
func (a *App) RunExample(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	for _, sig := range ExampleSignals() {
		res := a.signals.LogSignal(sig)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		if !res.OK() {
			return fmt.Errorf("log example signal: %s", res.Message)
		}
	}
	return nil
}
