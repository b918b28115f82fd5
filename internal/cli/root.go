package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Alp4ka/keysetpager/internal/config"
	"github.com/Alp4ka/keysetpager/internal/logger"
)

// NewRootCmd creates the keysetd root command.
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "keysetd",
		Short:         "Reference HTTP service for keyset paginated lists",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file")

	rootCmd.AddCommand(
		NewServeCmd(&configPath),
		NewSeedCmd(&configPath),
	)

	return rootCmd
}

func loadRuntime(configPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}
