// SPDX-License-Identifier: Apache-2.0
package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/hashicorp/go-hclog"
)

// executeCommand runs cmd in the requested mode and returns the target's
// exit code. Exec mode replaces the launcher process and never returns on
// success; spawn mode waits for the child.
func executeCommand(cmd *exec.Cmd, useExec bool, logger hclog.Logger) (int, error) {
	if useExec {
		return 0, executeViaExec(cmd, logger)
	}
	return executeViaSpawn(cmd, logger)
}

// executeViaExec replaces the current process with the target via
// syscall.Exec. Returning at all means the exec failed.
func executeViaExec(cmd *exec.Cmd, logger hclog.Logger) error {
	envv := cmd.Env
	if envv == nil {
		envv = os.Environ()
	}

	// Any remaining lookup has to happen in the child's PATH, where the
	// env file's mutations live.
	binary := cmd.Path
	if !filepath.IsAbs(binary) {
		resolved, err := lookPathIn(binary, envValue(envv, "PATH"))
		if err != nil {
			return fmt.Errorf("failed to find command %s: %w", cmd.Path, err)
		}
		binary = resolved
	}

	argv := append([]string{binary}, cmd.Args[1:]...)

	logger.Info("🚀 Handing off to target program", "path", binary)
	logger.Debug("🔄 Replacing process via exec()", "args", argv[1:])

	err := syscall.Exec(binary, argv, envv)
	return fmt.Errorf("exec failed: %w", err)
}

// executeViaSpawn starts the target as a child process, waits for it and
// returns its exit code.
func executeViaSpawn(cmd *exec.Cmd, logger hclog.Logger) (int, error) {
	logger.Info("🚀 Spawning target program", "path", cmd.Path)
	logger.Debug("👶 Full command with args", "args", cmd.Args[1:])

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start target: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := exitErr.ExitCode()
			logger.Info("⏹️ Target exited", "code", code)
			return code, nil
		}
		return 0, fmt.Errorf("target process error: %w", err)
	}

	logger.Info("✅ Target completed successfully")
	return 0, nil
}

// ♟️🕰️🚀
