package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"coinmarker/internal/application/port"
	"coinmarker/internal/infrastructure/logger"
	"coinmarker/internal/infrastructure/svc"
	"coinmarker/internal/interfaces/console"
)

var errMarkupProblems = errors.New("output contains errors")

func newRenderCmd() *cobra.Command {
	var (
		file    string
		format  string
		strict  bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Resolve markers in text once and print the result",
		Long: "Resolve markers in the given text, a file (--file) or standard input, " +
			"and print the output.",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := console.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// keep stdout for the rendered text
			logger.SetupWriter(cmd.ErrOrStderr(), cfg.App.LogLevel)

			text, err := readInput(cmd.InOrStdin(), file, args)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			sc, err := svc.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer sc.Close()

			res := sc.RenderService().Render(ctx, text)
			sink := console.NewSink(cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
			if err := sink.WriteView(port.View{
				SessionID: res.SessionID,
				Output:    res.Output,
				Error:     res.Error,
				ShowError: res.Error != "",
			}); err != nil {
				return err
			}
			if strict && res.Error != "" {
				return errMarkupProblems
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read text from file (- for stdin)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, plain or html")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the error banner would be shown")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")
	return cmd
}

// readInput 参数优先，其次 --file，最后读标准输入
func readInput(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "" && file != "-":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(b), nil
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
}
