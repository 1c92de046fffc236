// Package cmd implements the hearth CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hearthhq/hearth/internal/api"
	"github.com/hearthhq/hearth/internal/config"
	"github.com/hearthhq/hearth/internal/logging"
)

var (
	cfgFile        string
	serverOverride string
	themeOverride  string
	verbose        bool

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "hearth",
	Short: "Hearth — your household's documents from the terminal",
	Long:  "Hearth is a terminal client for a Hearth household server: browse, download, and manage the family's documents.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ~/.config/hearth/hearth.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverOverride, "server", "", "server URL, overriding the config file")
	rootCmd.PersistentFlags().StringVar(&themeOverride, "theme", "", "color theme: dark, light, or auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(validateCmd)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("hearth %s (commit: %s)\n", version, commit))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configPath resolves the effective config file path.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return cfg, err
	}
	if serverOverride != "" {
		cfg.ServerURL = serverOverride
	}
	if themeOverride != "" {
		cfg.Theme = themeOverride
	}
	return cfg, nil
}

// newLogger builds the file-backed logger named in the config.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogFile, verbose)
}

// newClient builds the API client for the configured server.
func newClient(cfg config.Config, logger *zap.Logger) *api.Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return api.NewClient(cfg.ServerURL, timeout, logger)
}
