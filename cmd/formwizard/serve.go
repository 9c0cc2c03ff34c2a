package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/metrics"
	"github.com/goliatone/go-formwizard/internal/server"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
)

var serveFlags struct {
	host string
	port int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wizard over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := app.cfg
		if serveFlags.host != "" {
			cfg.Server.Host = serveFlags.host
		}
		if serveFlags.port != 0 {
			cfg.Server.Port = serveFlags.port
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		def, err := loadDefinition(cfg.Definition)
		if err != nil {
			return err
		}
		resolved, err := resolveTheme(cfg.Theme)
		if err != nil {
			return err
		}

		options := []server.Option{
			server.WithMetrics(metrics.New()),
			server.WithTheme(resolved),
			server.WithAssets(cfg.Server.AssetsURL, vanilla.AssetsFS()),
		}
		submitter, err := newSubmitter(ctx, cfg.Backend)
		if err != nil {
			return err
		}
		if submitter != nil {
			options = append(options, server.WithSubmitter(submitter))
		} else {
			app.logger.Warn("no backend configured; accepted solicitudes stay local")
		}

		srv, err := server.New(def, app.logger, server.Config{
			Host:       cfg.Server.Host,
			Port:       cfg.Server.Port,
			SessionTTL: cfg.Server.SessionTTL,
		}, options...)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("shutdown", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.host, "host", "", "listen host (overrides server.host)")
	serveCmd.Flags().IntVarP(&serveFlags.port, "port", "p", 0, "listen port (overrides server.port)")
}
