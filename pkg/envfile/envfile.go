// Package envfile loads an external shell environment file the way the
// original launcher script did with ". ~/dev/NicLink/pyenv_up.sh": the
// file is sourced in a POSIX shell and the resulting environment is
// captured, so its mutations can be handed to the target program.
package envfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
)

var (
	// ErrEnvFileMissing is returned when the shell failed because the file does not exist
	ErrEnvFileMissing = errors.New("environment file does not exist")

	// ErrSourceFailed is returned when the file exists but sourcing it exited non-zero
	ErrSourceFailed = errors.New("sourcing environment file failed")
)

// DefaultShell is used for sourcing when no override is configured.
const DefaultShell = "/bin/sh"

// Shell returns the shell to source environment files with. On Windows
// there is no /bin/sh, so a bash on PATH (Git Bash, MSYS, WSL shims) is
// used instead; CHESSCLOCK_SHELL overrides everywhere.
func Shell() string {
	if sh := os.Getenv("CHESSCLOCK_SHELL"); sh != "" {
		return sh
	}
	if runtime.GOOS == "windows" {
		if bash, err := exec.LookPath("bash.exe"); err == nil {
			return bash
		}
		return "bash.exe"
	}
	return DefaultShell
}

// Source runs the environment file through a POSIX shell and returns the
// complete environment visible after it ran, NUL-separated so multi-line
// values survive. The file itself is opaque: whatever it exports, aliases
// aside, is reflected in the result.
//
// There is no up-front existence check; the shell reports the failure and
// the error is classified afterwards so callers can tell a missing file
// from a broken one.
func Source(file, shell string, logger hclog.Logger) ([]string, error) {
	if shell == "" {
		shell = Shell()
	}
	logger.Debug("🐚 Sourcing environment file", "file", file, "shell", shell)

	// The path travels as $0 so it needs no quoting inside the command
	// string. The file's own stdout is diverted to stderr: activation
	// scripts like to announce themselves, and any chatter on stdout
	// would corrupt the env -0 stream.
	cmd := exec.Command(shell, "-c", `. "$0" >&2 && env -0`, file)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, statErr := os.Stat(file); os.IsNotExist(statErr) {
			logger.Error("❌ Environment file not found", "file", file)
			return nil, fmt.Errorf("%w: %s", ErrEnvFileMissing, file)
		}
		msg := strings.TrimSpace(stderr.String())
		logger.Error("❌ Environment file failed", "file", file, "stderr", msg, "error", err)
		if msg != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrSourceFailed, file, msg)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceFailed, file, err)
	}

	env := ParseNul(stdout.Bytes())
	logger.Debug("✅ Environment file sourced", "file", file, "vars", len(env))
	return env, nil
}

// ParseNul splits NUL-separated KEY=VALUE records as produced by env -0.
func ParseNul(data []byte) []string {
	var env []string
	for _, rec := range bytes.Split(data, []byte{0}) {
		if len(rec) == 0 {
			continue
		}
		entry := string(rec)
		if strings.IndexByte(entry, '=') >= 1 {
			env = append(env, entry)
		}
	}
	return env
}

// Diff returns the entries of sourced that are new or changed relative to
// parent. Variables the file unsets are ignored: the launcher only ever
// layers on top of the environment it inherited.
func Diff(parent, sourced []string) []string {
	base := make(map[string]string, len(parent))
	for _, e := range parent {
		if k, v, ok := strings.Cut(e, "="); ok {
			base[k] = v
		}
	}

	var mutations []string
	for _, e := range sourced {
		k, v, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		if old, exists := base[k]; !exists || old != v {
			mutations = append(mutations, e)
		}
	}
	return mutations
}

// Apply overlays mutations onto base, replacing existing keys in place
// and appending new ones.
func Apply(base, mutations []string) []string {
	out := make([]string, len(base))
	copy(out, base)

	for _, m := range mutations {
		k, _, ok := strings.Cut(m, "=")
		if !ok {
			continue
		}
		prefix := k + "="
		replaced := false
		for i, e := range out {
			if strings.HasPrefix(e, prefix) {
				out[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, m)
		}
	}
	return out
}
