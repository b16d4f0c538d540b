package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geo-search/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the map page and search API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		app := newApp(cfg)
		// The page stays usable without data; searches are no-ops until
		// the load succeeds.
		if err := loadApp(ctx, app, cfg.Load); err != nil {
			zap.L().Error("load dataset", zap.Error(err))
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := server.New(server.Config{
			Port:           port,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			DataDir:        cfg.Data.Dir,
		}, app)

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		if err := srv.Start(); err != nil {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
