package helpers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/shlex"

	"github.com/etchlabs/etch/pkg/config"
	"github.com/etchlabs/etch/pkg/logger"
)

// CommandResult captures the outcome of a subprocess run.
type CommandResult struct {
	OK     bool
	Stdout string
	Stderr string
}

// RunCommand runs a system command with the etch tool bin directory
// prepended to PATH. The command runs to completion before returning; a
// non-zero exit or missing executable yields OK=false rather than an error.
func RunCommand(ctx context.Context, command []string, cwd string) (CommandResult, error) {
	if len(command) == 0 {
		return CommandResult{}, errors.New("empty command")
	}
	cfg, err := config.ManagerFromContext(ctx).Get(ctx)
	if err != nil {
		return CommandResult{}, err
	}
	if cwd == "" {
		if cwd, err = os.Getwd(); err != nil {
			return CommandResult{}, fmt.Errorf("failed to determine working directory: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = cwd
	cmd.Env = append(os.Environ(),
		"PATH="+filepath.Join(cfg.InstallDir, "bin")+string(os.PathListSeparator)+os.Getenv("PATH"))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log := logger.FromContext(ctx)
	log.Debug("running command", "command", command, "cwd", cwd)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return CommandResult{OK: false, Stdout: stdout.String(), Stderr: stderr.String()}, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return CommandResult{OK: false, Stderr: "executable not found"}, nil
		}
		return CommandResult{}, fmt.Errorf("failed to run command: %w", err)
	}
	return CommandResult{OK: true, Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// RunCommandLine splits a shell-style command line and runs it.
func RunCommandLine(ctx context.Context, commandLine string, cwd string) (CommandResult, error) {
	parts, err := shlex.Split(commandLine)
	if err != nil {
		return CommandResult{}, fmt.Errorf("failed to parse command line: %w", err)
	}
	return RunCommand(ctx, parts, cwd)
}
