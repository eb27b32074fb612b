package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/etchlabs/etch/cli/helpers"
)

// CompileCmd returns the compile command.
func CompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Compile kernels for the current project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			helpers.NewStatusWriter(os.Stdout).Info("compile is not implemented yet")
			return nil
		},
	}
}
