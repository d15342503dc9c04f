package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/honorary-calc/internal/api"
	"github.com/username/honorary-calc/internal/config"
)

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the honorary API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if port != 0 {
				cfg.HTTP.Port = port
			}

			engine, cal, computed, err := initializeEngine(cfg)
			if err != nil {
				return err
			}

			router := api.NewRouter(api.RouterConfig{
				Engine:    engine,
				Calendar:  cal,
				Holidays:  computed,
				Fares:     cfg.Fares.Fares(),
				Logger:    logger,
				RateLimit: cfg.HTTP.RateLimit,
			})

			server := api.NewServer(api.ServerConfig{
				Addr:            cfg.HTTP.Addr(),
				ReadTimeout:     cfg.HTTP.GetReadTimeout(),
				WriteTimeout:    cfg.HTTP.GetWriteTimeout(),
				ShutdownTimeout: cfg.HTTP.GetShutdownTimeout(),
			}, router, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.Run(ctx); err != nil {
				logger.Error("HTTP server failed", zap.Error(err))
				return err
			}

			logger.Info("HTTP server stopped")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override http.port")

	return cmd
}
