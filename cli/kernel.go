package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/etchlabs/etch/cli/helpers"
)

// KernelCmd returns the kernel command.
func KernelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kernel",
		Short: "Hardware kernel build commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			helpers.NewStatusWriter(os.Stdout).Info("kernel commands are not implemented yet")
			return nil
		},
	}
}
