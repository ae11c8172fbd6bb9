package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hrygo/apptime/plugin/timeout"
	"github.com/hrygo/apptime/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP resolver API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := server.NewServer(ctx, a.profile, a.logger)
			if err != nil {
				return errors.Wrap(err, "failed to create server")
			}
			if err := s.Start(); err != nil {
				return errors.Wrap(err, "failed to start server")
			}
			a.logger.Info("server started",
				slog.String("addr", s.Addr()),
				slog.String("mode", a.profile.Mode),
				slog.String("timezone", a.profile.Location().String()),
				slog.String("version", a.profile.Version),
			)

			<-ctx.Done()
			a.logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout.ShutdownTimeout)
			defer cancel()
			if err := s.Shutdown(shutdownCtx); err != nil {
				return errors.Wrap(err, "failed to shut down server")
			}
			return nil
		},
	}
}
