package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/etchlabs/etch/pkg/logger"
	"github.com/etchlabs/etch/pkg/version"
)

// RootCmd builds the etch command tree.
func RootCmd() *cobra.Command {
	var (
		logLevel string
		logJSON  bool
		envFile  string
	)

	root := &cobra.Command{
		Use:           "etch",
		Short:         "Hardware kernel build tool",
		Long:          "etch builds and manages hardware kernels, with layered project configuration.",
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("failed to load env file %s: %w", envFile, err)
				}
			}
			log := logger.SetupLogger(logLevel, logJSON)
			cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log in JSON format")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from file")

	root.AddCommand(
		ConfigCmd(),
		ProjectCmd(),
		KernelCmd(),
		CompileCmd(),
		CompletionCmd(),
	)

	return root
}
