package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/etchlabs/etch/cli/helpers"
)

// CompletionCmd returns the completion command.
func CompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Shell completion helpers",
	}

	cmd.AddCommand(completionInstallCmd())
	return cmd
}

func completionInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install [shell]",
		Short: "Install tab completion for etch",
		Long: `Generate the completion script for the given shell (bash, zsh, or fish)
and install it in the shell's conventional location. Without an argument the
shell is detected from $SHELL.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) > 0 {
				shell = args[0]
			}
			if shell == "" {
				shell = detectShell()
			}
			status := helpers.NewStatusWriter(os.Stdout)
			path, hint, err := installCompletion(cmd.Root(), shell)
			if err != nil {
				status.Error("failed to install completion for %s: %v", shell, err)
				return err
			}
			status.Success("completion installed to %s", path)
			if hint != "" {
				status.Info("%s", hint)
			}
			return nil
		},
	}
}

func detectShell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return ""
	}
	return filepath.Base(shell)
}

// installCompletion writes the generated completion script to the shell's
// conventional location and returns the path plus a follow-up hint.
func installCompletion(root *cobra.Command, shell string) (string, string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	var (
		path string
		hint string
		gen  func(string) error
	)
	switch strings.ToLower(shell) {
	case "bash":
		path = filepath.Join(home, ".bash_completion.d", "etch")
		hint = "add 'source " + path + "' to your ~/.bashrc"
		gen = func(p string) error { return root.GenBashCompletionFileV2(p, true) }
	case "zsh":
		path = filepath.Join(home, ".zsh", "completions", "_etch")
		hint = "add 'fpath=(~/.zsh/completions $fpath)' to your ~/.zshrc"
		gen = root.GenZshCompletionFile
	case "fish":
		path = filepath.Join(home, ".config", "fish", "completions", "etch.fish")
		gen = func(p string) error { return root.GenFishCompletionFile(p, true) }
	default:
		return "", "", helpers.NewCliError("UNSUPPORTED_SHELL",
			fmt.Sprintf("unsupported shell %q", shell), "supported: bash, zsh, fish")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create completion directory: %w", err)
	}
	if err := gen(path); err != nil {
		return "", "", err
	}
	return path, hint, nil
}
