package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/fsm/internal/adapters/http"
	"github.com/aretw0/fsm/internal/presentation/tui"
	"github.com/aretw0/fsm/pkg/observability"
	"github.com/aretw0/fsm/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		port  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Serves the automata over a JSON API, with Prometheus metrics on /metrics.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
			r := runner.New(runner.WithLogger(a.logger), runner.WithHooks(metrics.Hooks()))
			handler := httpAdapter.NewHandler(reg, r, httpAdapter.WithLogger(a.logger))

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				go func() {
					if err := reg.Watch(ctx, a.dir, a.load); err != nil {
						a.logger.Error("watch stopped", "error", err)
					}
				}()
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				tui.PrintBanner(cmd.OutOrStdout())
				fmt.Fprintf(cmd.OutOrStdout(), "Serving %d automata from %s on %s\n", reg.Len(), a.dir, srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				return fmt.Errorf("server error: %w", err)

			case <-ctx.Done():
				a.logger.Info("shutting down")

				// Give outstanding requests a deadline for completion.
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := srv.Shutdown(shutdownCtx); err != nil {
					closeErr := srv.Close()
					return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, errors.Join(err, closeErr))
				}
				fmt.Fprintln(cmd.OutOrStdout(), "fsm server stopped gracefully")
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to listen on")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the automata when a definition file changes")
	return cmd
}
