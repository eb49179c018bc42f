// Package cmd implements matchctl, the operator CLI for the matching
// service.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yoockh/orbitmatch/config"
	"github.com/yoockh/orbitmatch/internal/logger"
)

const app = "matchctl"

var (
	logLevel string
	log      = logger.New()

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "matchctl runs maintenance and one-off matching tasks against the orbitmatch stores",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			config.LoadDotEnv()
			if logLevel == "" {
				logLevel = os.Getenv("LOG_LEVEL")
			}
			log.SetLevel(logger.ParseLevel(logLevel))
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error); defaults to LOG_LEVEL")
	rootCmd.AddCommand(indexesCmd, matchCmd, handleCmd)
}
