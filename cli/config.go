package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/etchlabs/etch/cli/helpers"
	"github.com/etchlabs/etch/pkg/config"
)

// ConfigCmd returns the config command.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage etch configuration",
	}

	cmd.AddCommand(
		configShowCmd(),
		configSetCmd(),
		configResetCmd(),
		configInitCmd(),
	)

	return cmd
}

func configShowCmd() *cobra.Command {
	var (
		format      string
		showSources bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Long: `Display the resolved configuration after merging defaults, the global
config file, the local config file, and ETCH_* environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			manager := config.ManagerFromContext(ctx)
			cfg, err := manager.Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			resolved, err := resolveFormat(format)
			if err != nil {
				return err
			}
			switch resolved {
			case OutputFormatJSON:
				return writeJSON(os.Stdout, cfg)
			case OutputFormatYAML:
				return writeYAML(os.Stdout, cfg)
			default:
				return printConfigTable(manager, cfg, showSources)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (table, json, yaml)")
	cmd.Flags().BoolVarP(&showSources, "sources", "s", false, "Show which source provided each value")
	return cmd
}

// printConfigTable renders each registered field with its value, and
// optionally the source layer that provided it.
func printConfigTable(manager *config.Manager, cfg *config.Config, showSources bool) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if showSources {
		fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
	} else {
		fmt.Fprintln(w, "KEY\tVALUE")
	}
	defs := config.Definitions()
	paths := defs.Paths()
	for _, path := range paths {
		def, ok := defs.GetField(path)
		if !ok || def.Get == nil {
			continue
		}
		// Group entries are covered by their leaf fields.
		if hasChildPath(path, paths) {
			continue
		}
		value := def.Get(cfg)
		if showSources {
			fmt.Fprintf(w, "%s\t%v\t%s\n", path, value, manager.Service().GetSource(path))
			continue
		}
		fmt.Fprintf(w, "%s\t%v\n", path, value)
	}
	return w.Flush()
}

func hasChildPath(path string, paths []string) bool {
	for _, other := range paths {
		if strings.HasPrefix(other, path+".") {
			return true
		}
	}
	return false
}

func configSetCmd() *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Update a single setting",
		Long: `Update a single setting and persist it to the local config file.
Keys accept a one-dot shorthand: "api.port" updates "api_port".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			status := helpers.NewStatusWriter(os.Stdout)
			manager := config.ManagerFromContext(ctx)
			if err := manager.UpdateField(ctx, args[0], args[1], !noSave); err != nil {
				status.Error("failed to update %s: %v", args[0], err)
				return err
			}
			status.Success("updated %s = %s", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not persist the change to the local config file")
	return cmd
}

func configResetCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset all settings to their defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			status := helpers.NewStatusWriter(os.Stdout)
			manager := config.ManagerFromContext(ctx)
			if err := manager.ResetToDefaults(ctx, save); err != nil {
				status.Error("failed to reset settings: %v", err)
				return err
			}
			status.Success("settings reset to defaults")
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Persist the defaults to the local config file")
	return cmd
}

func configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize project configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// TODO: interactive project configuration wizard.
			helpers.NewStatusWriter(os.Stdout).Info("config init is not implemented yet")
			return nil
		},
	}
}
