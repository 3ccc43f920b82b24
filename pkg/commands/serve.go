package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rqa-security/guardhouse/api"
	"github.com/rqa-security/guardhouse/pkg/commands/text"
)

var (
	serveShort = "Serve the REST API"

	serveLong = text.LongDesc(`
		Connects to the database and serves the REST API until SIGINT or SIGTERM is
		received. In-flight requests are given server.shutdown_timeout to complete.
	`)

	serveExample = text.Examples(`
		# Serve with the settings of guardhouse.yaml
		guardhouse serve

		# Serve on another port, configured from the environment
		GUARDHOUSE_SERVER_PORT=8080 guardhouse serve --config .env
	`)
)

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   serveShort,
		Long:    serveLong,
		Example: serveExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}
}

func (a *app) runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	return a.withStore(cmd, func(store Store) error {
		srv, err := api.NewServer(store, a.lggr, api.NewConfig(a.settings))
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		sc := a.settings.Server
		httpSrv := &http.Server{
			Handler:           srv.Handler(),
			ReadTimeout:       sc.ReadTimeout,
			ReadHeaderTimeout: sc.ReadTimeout,
			WriteTimeout:      sc.WriteTimeout,
		}
		ln, err := a.cfg.Deps.Listen("tcp", sc.Addr())
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", sc.Addr(), err)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			a.lggr.Infow("Serving API", "addr", ln.Addr().String())
			if err := httpSrv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			a.lggr.Infow("Shutting down", "timeout", sc.ShutdownTimeout)

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), sc.ShutdownTimeout)
			defer cancel()

			return httpSrv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	})
}
