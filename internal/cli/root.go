package cli

import (
	"log/slog"
	"os"

	"productapi/internal/config"
	"productapi/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "productapi",
	Short:         "Product catalog REST API",
	Long:          "productapi serves CRUD endpoints for products stored in SQLite or PostgreSQL.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (yaml, json or toml)")
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newEventsCmd())
}

// Execute runs the CLI
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		slog.Error("command failed", slog.Any("error", err))
	}
	return err
}

// loadConfig reads the configuration and installs the configured logger as
// the process default.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.New(), configFile)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logging.New(cfg.Log, os.Stdout))
	return cfg, nil
}
