package di

import (
	"fmt"

	drepo "SignalLog/internal/domain/repository"
	"SignalLog/internal/handler/api"
	"SignalLog/internal/repository"
	"SignalLog/internal/service/clock"
	"SignalLog/internal/service/ratelimit"
	"SignalLog/internal/service/schema"
	"SignalLog/internal/usecase"
	"SignalLog/pkg/config"
	xhttp "SignalLog/pkg/http"
	applogger "SignalLog/pkg/logger"
	"SignalLog/pkg/metrics"
	"SignalLog/pkg/server"
)

// ProvideLogger creates the diagnostic sink.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
		Compress:   cfg.Logger.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder, or a no-op one when
// metrics are disabled.
func ProvideMetrics(cfg *config.Config) drepo.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Noop{}
	}
	return metrics.New(nil)
}

// ProvideClock creates the timezone clock.
func ProvideClock(cfg *config.Config) (drepo.Clock, error) {
	c, err := clock.NewZone(cfg.SignalLog.Timezone)
	if err != nil {
		return nil, fmt.Errorf("clock: %w", err)
	}
	return c, nil
}

// ProvideSchema creates the signal validator.
func ProvideSchema(cfg *config.Config) *schema.Validator {
	return schema.New(schema.WithStrictConfidence(cfg.SignalLog.StrictConfidence))
}

// ProvideSignalStore opens the JSON signal log.
func ProvideSignalStore(cfg *config.Config, l *applogger.Logger, m drepo.Metrics) (*repository.JSONSignalStore, error) {
	store, err := repository.NewJSONSignalStore(cfg.SignalLog.Path,
		repository.WithMaxLogSize(cfg.SignalLog.MaxLogSize),
		repository.WithBackupCount(cfg.SignalLog.BackupCount),
		repository.WithSink(l),
		repository.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("signal store: %w", err)
	}
	return store, nil
}

// ProvideSignalLogger creates the signal logger use case.
func ProvideSignalLogger(
	store *repository.JSONSignalStore,
	v *schema.Validator,
	clk drepo.Clock,
	l *applogger.Logger,
	m drepo.Metrics,
) *usecase.SignalLogger {
	return usecase.NewSignalLogger(store, v, clk, l, m)
}

// ProvideSignalsHandler creates the HTTP handler.
func ProvideSignalsHandler(
	l *applogger.Logger,
	signals *usecase.SignalLogger,
	store *repository.JSONSignalStore,
) *api.SignalsEchoHandler {
	return api.NewSignalsEchoHandler(l, signals, store)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(
	cfg *config.Config,
	h *api.SignalsEchoHandler,
	l *applogger.Logger,
	m drepo.Metrics,
) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
		xhttp.WithLatencyRecorder(m),
	}
	if rl := cfg.Server.RateLimit; rl.Enabled {
		opts = append(opts, xhttp.WithRateLimiter(ratelimit.New(rl.Burst, rl.PerSecond)))
	}
	return xhttp.NewServer(h, opts...)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	signals *usecase.SignalLogger,
	srv *xhttp.Server,
) *server.App {
	return server.New(cfg, l, signals, srv)
}
