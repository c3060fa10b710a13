package main

import (
	"os"

	"github.com/nhdewitt/specsheet/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel   string
	configPath string

	cfg    config.Config
	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:           "specsheet",
	Short:         "Report this machine's hardware and software specification",
	Long:          "Gathers OS, CPU, memory, storage, graphics adapter and DirectX information into one report for display or telemetry.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		cfg = loaded

		logger.SetOutput(os.Stderr)
		logger.SetLevel(cfg.Level())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")

	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewPushCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Fatal("Failed to execute command")
	}
}
