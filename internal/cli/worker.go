package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// errDevModeWorker is returned when the worker is started without NATS.
var errDevModeWorker = errors.New("worker requires NATS; disable dev mode")

func newWorkerCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Process queued assignment requests from NATS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWorker(ctx, rootOpts, cmd)
		},
	}
}

func runWorker(ctx context.Context, rootOpts *RootOptions, cmd *cobra.Command) error {
	a, err := newApp(rootOpts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.DevMode {
		return errDevModeWorker
	}

	svc, err := a.exchange()
	if err != nil {
		return err
	}
	js, err := a.connect()
	if err != nil {
		return err
	}
	store, err := a.pipeline(ctx, js)
	if err != nil {
		return err
	}

	cons, err := a.startWorker(ctx, js, svc, store)
	if err != nil {
		return err
	}

	<-ctx.Done()

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	return cons.Close(closeCtx)
}
