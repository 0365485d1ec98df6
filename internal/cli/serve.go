package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AjayBarot7035/secret-santa/httpapi"
	"github.com/AjayBarot7035/secret-santa/results"
	"github.com/AjayBarot7035/secret-santa/worker"
)

const closeTimeout = 10 * time.Second

type serveOptions struct {
	noWorker bool
}

func newServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

In dev mode every request is answered synchronously and responses carrying a
request_id are kept in memory for check_status. Otherwise submitted
requests are queued on NATS JetStream and an in-process worker processes
them, unless --no-worker is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, rootOpts, opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.noWorker, "no-worker", false, "only accept requests; leave processing to separate workers")

	return cmd
}

func runServe(ctx context.Context, rootOpts *RootOptions, opts *serveOptions, cmd *cobra.Command) error {
	a, err := newApp(rootOpts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.exchange()
	if err != nil {
		return err
	}

	serverOpts := []httpapi.Option{
		httpapi.WithLogger(a.logger),
		httpapi.WithMetrics(a.collector),
		httpapi.WithRequestTimeout(a.cfg.HTTP.RequestTimeout),
	}
	if a.metricsHandler != nil {
		serverOpts = append(serverOpts, httpapi.WithMetricsHandler(a.metricsHandler))
	}

	if a.cfg.DevMode {
		serverOpts = append(serverOpts, httpapi.WithResults(results.NewMemory()))
	} else {
		js, err := a.connect()
		if err != nil {
			return err
		}
		store, err := a.pipeline(ctx, js)
		if err != nil {
			return err
		}
		sub, err := worker.NewSubmitter(js, a.workerConfig())
		if err != nil {
			return err
		}
		serverOpts = append(serverOpts, httpapi.WithSubmitter(sub), httpapi.WithResults(store))

		if !opts.noWorker {
			cons, err := a.startWorker(ctx, js, svc, store)
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
				defer cancel()
				_ = cons.Close(closeCtx)
			}()
		}
	}

	srv, err := httpapi.New(svc, serverOpts...)
	if err != nil {
		return err
	}

	return srv.ListenAndServe(ctx, a.cfg.HTTP.Addr)
}
