package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	secretsanta "github.com/AjayBarot7035/secret-santa"
	"github.com/AjayBarot7035/secret-santa/history"
	"github.com/AjayBarot7035/secret-santa/internal/exchange"
	"github.com/AjayBarot7035/secret-santa/internal/logging"
	"github.com/AjayBarot7035/secret-santa/internal/metrics"
	"github.com/AjayBarot7035/secret-santa/results"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/worker"
)

// app holds the components shared by the commands.
type app struct {
	cfg            secretsanta.Config
	logger         types.Logger
	collector      types.MetricsCollector
	metricsHandler http.Handler
	closers        []func() error
}

// newApp loads configuration, applies environment overrides and builds the
// logger and metrics.
func newApp(opts *RootOptions, logOut io.Writer) (*app, error) {
	cfg, err := secretsanta.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(opts.lookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.NewFromConfig(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", secretsanta.ErrInvalidConfig, err)
	}

	a := &app{cfg: cfg, logger: log, collector: metrics.NewNop()}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.collector = metrics.NewPrometheus(reg, cfg.Metrics.Namespace)
		a.metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	return a, nil
}

// exchange builds the generation service, opening the history database when configured.
func (a *app) exchange() (*exchange.Service, error) {
	gen, err := secretsanta.NewGeneratorFromConfig(a.cfg.Generator,
		secretsanta.WithLogger(a.logger),
		secretsanta.WithMetrics(a.collector),
	)
	if err != nil {
		return nil, err
	}

	opts := []exchange.Option{exchange.WithLogger(a.logger)}
	if a.cfg.History.Path != "" {
		store, err := history.Open(a.cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		opts = append(opts, exchange.WithHistory(store))
		a.logger.Info("history enabled", "path", a.cfg.History.Path)
	}

	return exchange.New(gen, opts...), nil
}

// connect dials NATS and returns a JetStream context.
func (a *app) connect() (jetstream.JetStream, error) {
	nc, err := nats.Connect(a.cfg.NATS.URL,
		nats.Name("secret-santa"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				a.logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			a.logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to %s: %w", types.ErrConnectivity, a.cfg.NATS.URL, err)
	}
	a.closers = append(a.closers, func() error {
		nc.Close()
		return nil
	})

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return js, nil
}

// workerConfig maps the NATS section onto the worker configuration.
func (a *app) workerConfig() worker.Config {
	cfg := worker.ConfigFromNATS(a.cfg.NATS)
	cfg.Logger = a.logger
	cfg.Metrics = a.collector

	return cfg
}

// pipeline provisions the stream and results bucket.
func (a *app) pipeline(ctx context.Context, js jetstream.JetStream) (*results.KV, error) {
	if _, err := worker.EnsureStream(ctx, js, a.workerConfig()); err != nil {
		return nil, fmt.Errorf("failed to provision stream: %w", err)
	}

	return results.NewKV(ctx, js, a.cfg.NATS.ResultsBucket, a.cfg.NATS.ResultsTTL)
}

// startWorker launches a consumer processing requests with svc.
func (a *app) startWorker(ctx context.Context, js jetstream.JetStream, svc worker.Runner, store results.Store) (*worker.Consumer, error) {
	wcfg := a.workerConfig()

	proc, err := worker.NewProcessor(js, svc, store, wcfg)
	if err != nil {
		return nil, err
	}
	cons, err := worker.NewConsumer(js, wcfg, proc)
	if err != nil {
		return nil, err
	}
	if err := cons.Start(ctx); err != nil {
		return nil, err
	}

	return cons, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil

	return errors.Join(errs...)
}
