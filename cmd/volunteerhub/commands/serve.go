package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/communityserve/volunteerhub/internal/server"
	"github.com/communityserve/volunteerhub/pkg/postgres"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the matching engine HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			sink := postgres.NewNotificationSink(app.Database)
			srv := server.New(app.Database, sink, app.Logger)

			httpServer := &http.Server{
				Addr:              app.Cfg.ListenAddr,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(app.Ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("Server listening", zap.String("addr", app.Cfg.ListenAddr))
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
				app.Logger.Info("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(app.Ctx, shutdownTimeout)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
