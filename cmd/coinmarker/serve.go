package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"coinmarker/internal/infrastructure/logger"
	"coinmarker/internal/infrastructure/svc"
	"coinmarker/internal/interfaces/web"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger.Setup(cfg.App.LogLevel)
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sc, err := svc.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer sc.Close()

			log.Info().
				Str("config", configPath).
				Str("addr", cfg.Server.Addr).
				Bool("storage", cfg.Storage.Enabled).
				Msg("coinmarker started")

			srv := web.NewServer(sc, web.Options{
				Addr:              cfg.Server.Addr,
				ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
			})
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
