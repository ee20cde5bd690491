// Command pricecheck runs price assessments against a local model directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"price-verification-service/internal/bootstrap"
	"price-verification-service/internal/config"
)

const appName = "pricecheck"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// commonFlags are shared by every subcommand that loads models.
type commonFlags struct {
	modelsDir   string
	catalogFile string
	skipInvalid bool
	logLevel    string
}

func rootCmd() *cobra.Command {
	var common commonFlags

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Expected unit price checks for trade transactions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			bootstrap.InitLogger(config.LoggerConfig{Level: common.logLevel, Format: "text"})
		},
	}

	cmd.PersistentFlags().StringVar(&common.modelsDir, "models", "price_models", "Directory holding model artifacts")
	cmd.PersistentFlags().StringVar(&common.catalogFile, "catalog", "", "YAML goods catalog overlaying the built-in descriptions")
	cmd.PersistentFlags().BoolVar(&common.skipInvalid, "skip-invalid", false, "Skip unreadable artifacts instead of failing")
	cmd.PersistentFlags().StringVar(&common.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(predictCmd(&common))
	cmd.AddCommand(codesCmd(&common))

	return cmd
}
