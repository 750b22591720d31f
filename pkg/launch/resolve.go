package launch

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// windowsFallbacks maps Unix interpreter names to their usual Windows
// counterparts, tried when the original name is not on PATH.
var windowsFallbacks = map[string]string{
	"python3": "python.exe",
	"sh":      "bash.exe",
}

// resolveExecutable resolves an interpreter reference against the PATH
// of the environment the target will run with, not the launcher's own.
// The env file's usual job is activating a virtualenv by prepending its
// bin directory to PATH, so its mutations must decide which python3
// wins. Unix absolute paths like /usr/bin/python3 are reduced to their
// basename first so a command template written on one machine still
// works on another. Resolution failures are not fatal here: the best
// remaining candidate is returned and exec reports the real error.
func resolveExecutable(executable string, env []string, logger hclog.Logger) string {
	name := executable
	if strings.HasPrefix(executable, "/") {
		name = filepath.Base(executable)
		logger.Debug("🔍 Reduced Unix path to basename", "original", executable, "basename", name)
	}

	pathList := envValue(env, "PATH")
	if pathList == "" {
		pathList = os.Getenv("PATH")
	}

	if resolved, err := lookPathIn(name, pathList); err == nil {
		logger.Debug("✅ Resolved interpreter via target PATH", "input", executable, "resolved", resolved)
		return resolved
	}

	if runtime.GOOS == "windows" {
		fallback := windowsFallbacks[strings.TrimSuffix(name, ".exe")]
		if fallback != "" {
			if resolved, err := lookPathIn(fallback, pathList); err == nil {
				logger.Debug("✅ Resolved interpreter via Windows fallback",
					"input", executable, "fallback", fallback, "resolved", resolved)
				return resolved
			}
		}
	}

	logger.Debug("⚠️ Could not resolve interpreter in target PATH", "input", executable, "using", name)
	return name
}

// lookPathIn is exec.LookPath against an explicit PATH value. The stdlib
// variant only consults the launcher's own environment, which is exactly
// the wrong one here.
func lookPathIn(name, pathList string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		// Explicit path: no search, just check it.
		if isExecutable(name) {
			return name, nil
		}
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			dir = "."
		}
		for _, candidate := range candidateNames(dir, name) {
			if isExecutable(candidate) {
				return candidate, nil
			}
		}
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// candidateNames expands a bare name with the usual Windows executable
// extensions; elsewhere the name is tried as-is.
func candidateNames(dir, name string) []string {
	joined := filepath.Join(dir, name)
	if runtime.GOOS != "windows" || filepath.Ext(name) != "" {
		return []string{joined}
	}
	return []string{joined + ".exe", joined + ".bat", joined + ".cmd", joined}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0o111 != 0
}
