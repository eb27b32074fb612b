package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/etchlabs/etch/cli/helpers"
)

// ProjectCmd returns the project command.
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the current project",
	}

	cmd.AddCommand(projectCreateCmd())
	return cmd
}

func projectCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new etch project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			helpers.NewStatusWriter(os.Stdout).Info("project create is not implemented yet (%s)", args[0])
			return nil
		},
	}
}
