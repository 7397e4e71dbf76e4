package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/restatolahdata/go-artikel/internal/logging"
)

func (a *app) serveCommand() *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the article JSON API, sitemap and legacy redirects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := a.options("")
			opts.Addr = addr
			if cmd.Flags().Changed("watch") {
				opts.Watch = &watch
			}
			module, err := a.build(opts)
			if err != nil {
				return err
			}
			handler, err := module.Handler()
			if err != nil {
				return err
			}

			cfg := module.Config()
			logger := logging.ModuleLogger(module.Logger(), "artikel.server")
			server := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			var watcher runner
			if w := module.Watcher(); w != nil {
				watcher = w
			}
			return serve(cmd.Context(), server, watcher, cfg.HTTP.ShutdownTimeout, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	cmd.Flags().BoolVar(&watch, "watch", false, "refresh content as soon as files change")
	return cmd
}

type runner interface {
	Run(ctx context.Context) error
}

type logger interface {
	Info(msg string, args ...any)
}

// serve runs the HTTP server and the optional watcher until ctx is done or
// either of them fails, then shuts the server down gracefully.
func serve(ctx context.Context, server *http.Server, watcher runner, shutdownTimeout time.Duration, log logger) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("server.listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("server.shutting_down")
		return server.Shutdown(shutdownCtx)
	})

	if watcher != nil {
		group.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	return group.Wait()
}
