package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/niclink/chessclock-launcher/pkg/utils/shellparse"
)

// ErrEmptyCommand is returned when the command template expands to nothing.
var ErrEmptyCommand = errors.New("empty launch command")

// BuildCommand expands the command template against the resolved
// self-directory and assembles the target process. env is the already
// layered environment (parent plus env-file mutations); extraArgs are
// forwarded after the template's own arguments.
func BuildCommand(opts Options, selfDir string, env []string, userCwd string, extraArgs []string, logger hclog.Logger) (*exec.Cmd, error) {
	command := opts.Command
	command = strings.ReplaceAll(command, "{python}", opts.Python)
	// Forward slashes keep backslashes out of the template on Windows,
	// where the word splitter would treat them as escapes.
	command = strings.ReplaceAll(command, "{selfdir}", filepath.ToSlash(selfDir))

	parts, err := shellparse.Split(command)
	if err != nil {
		logger.Error("❌ Failed to parse launch command", "command", command, "error", err)
		return nil, fmt.Errorf("failed to parse launch command %q: %w", command, err)
	}
	if len(parts) == 0 {
		logger.Error("❌ Launch command expanded to nothing", "template", opts.Command)
		return nil, ErrEmptyCommand
	}

	args := parts[1:]
	if len(extraArgs) > 0 {
		args = append(args, extraArgs...)
	}

	// Resolution runs against the merged environment so a venv activated
	// by the env file selects the interpreter, not the launcher's PATH.
	resolved := resolveExecutable(parts[0], env, logger)
	cmd := exec.Command(resolved, args...)

	cmd.Env = setEnv(env, "CHESSCLOCK_SELF_DIR", selfDir)
	cmd.Dir = userCwd
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Debug("🎯 Launch command assembled", "path", cmd.Path, "args", cmd.Args[1:], "cwd", cmd.Dir)
	logEnvironmentTrace(cmd.Env, logger)

	return cmd, nil
}
