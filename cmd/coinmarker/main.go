package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"coinmarker/internal/infrastructure/config"
	"coinmarker/internal/infrastructure/logger"
)

const defaultConfigPath = "configs/config.toml"

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "coinmarker",
		Short:         "Resolve {{ Action/Symbol }} markers against coinpaprika",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to config.toml")

	root.AddCommand(newServeCmd(), newTUICmd(), newRenderCmd())
	return root
}

// loadConfig 默认配置文件不存在时只用默认值和环境变量
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return config.Load(path)
}

func main() {
	logger.Setup("info")

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("coinmarker exited")
	}
}
