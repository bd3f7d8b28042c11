package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"liyu1981.xyz/sensor-alarm-service/pkg/config"
)

var (
	// envFile is loaded before the process environment is read.
	envFile string

	rootCmd = &cobra.Command{
		Use:   "alarm-service",
		Short: "Evaluate sensor readings against threshold rules and raise alarms.",
		Long: `alarm-service keeps the latest value of every sensor, evaluates the
alarm rules bound to it and records every alarm occurrence.

Triggered and cleared alarms are published to MQTT, Redis and a webhook when
they are configured, and always written to the service log.`,
		SilenceUsage: true,
	}
)

// Execute runs the CLI and exits with non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(envFile)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", ".env", "path to env file, ignored when missing")

	rootCmd.AddCommand(serveCmd, replayCmd, watchCmd)
}
