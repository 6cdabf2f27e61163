package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"coinmarker/internal/infrastructure/logger"
	"coinmarker/internal/infrastructure/svc"
	"coinmarker/internal/interfaces/tui"
)

func newTUICmd() *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// the screen belongs to the editor; logs go to a file or nowhere
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			logger.SetupWriter(w, cfg.App.LogLevel)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sc, err := svc.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer sc.Close()

			return tui.Run(ctx, sc.NewSession)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	return cmd
}
