package launch

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/niclink/chessclock-launcher/internal/paths"
	"github.com/niclink/chessclock-launcher/pkg/envfile"
)

// runCLI dispatches launcher CLI mode (CHESSCLOCK_LAUNCHER_CLI=1), where
// argv carries launcher commands instead of being forwarded to the target.
func runCLI(exePath string, args []string, opts Options, userCwd string, logger hclog.Logger) {
	if len(args) < 1 {
		// Default to info command when no args provided
		showInfo(exePath, opts, os.Stdout, logger)
		return
	}

	switch args[0] {
	case "info":
		showInfo(exePath, opts, os.Stdout, logger)
	case "doctor":
		if !Doctor(exePath, opts, os.Stdout, logger) {
			os.Exit(1)
		}
	case "env":
		if err := ShowEnv(opts, os.Stdout, false, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(ExitCodeFor(err))
		}
	case "run":
		code, err := Run(exePath, args[1:], opts, userCwd, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(ExitCodeFor(err))
		}
		os.Exit(code)
	case "help", "--help":
		fmt.Println("NicLink Chess Clock Launcher - CLI Mode")
		fmt.Println()
		fmt.Println("Available commands:")
		fmt.Println("  info              Show resolved launch configuration (default)")
		fmt.Println("  doctor            Check env file, interpreter and target script")
		fmt.Println("  env               Show what sourcing the env file would change")
		fmt.Println("  run [args...]     Launch the chess clock with arguments")
		fmt.Println("  help              Show this help message")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  CHESSCLOCK_LAUNCHER_CLI=1 ./chessclock-launcher <command>")
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown command '%s'\n", args[0])
		fmt.Fprintf(os.Stderr, "Available commands: info, doctor, env, run, help\n")
		os.Exit(ExitInvalidArgs)
	}
}

// showInfo prints the resolved launch configuration in human-readable form.
func showInfo(exePath string, opts Options, out io.Writer, logger hclog.Logger) {
	selfDir, err := resolveInfoSelfDir(exePath, opts)
	if err != nil {
		selfDir = fmt.Sprintf("<unresolved: %v>", err)
	}

	fmt.Fprintf(out, "chessclock-launcher v%s\n", Version)
	fmt.Fprintf(out, "Self-directory:   %s\n", selfDir)
	fmt.Fprintf(out, "Target script:    %s (%s)\n",
		filepath.Join(selfDir, paths.TargetScript), presence(filepath.Join(selfDir, paths.TargetScript)))
	fmt.Fprintf(out, "Environment file: %s (%s)\n", opts.EnvFile, presence(opts.EnvFile))
	fmt.Fprintf(out, "Interpreter:      %s\n", resolveExecutable(opts.Python, os.Environ(), logger))
	fmt.Fprintf(out, "Exec mode:        %s | Shell: %s\n", opts.ExecMode, opts.Shell)
	fmt.Fprintf(out, "\nRun with: %s\n", opts.Command)
}

// Doctor checks every external dependency the launch needs and reports
// each one. It returns false when a hard requirement is missing.
func Doctor(exePath string, opts Options, out io.Writer, logger hclog.Logger) bool {
	ok := true
	check := func(passed bool, label, detail string) {
		mark := "✓"
		if !passed {
			mark = "✗"
			ok = false
		}
		fmt.Fprintf(out, "%s %-20s %s\n", mark, label, detail)
	}

	selfDir, err := resolveInfoSelfDir(exePath, opts)
	if err != nil {
		check(false, "self-directory", err.Error())
	} else {
		check(true, "self-directory", selfDir)
	}

	envOK := false
	if info, err := os.Stat(opts.EnvFile); err != nil {
		check(false, "environment file", fmt.Sprintf("%s: %v", opts.EnvFile, err))
	} else if info.IsDir() {
		check(false, "environment file", opts.EnvFile+": is a directory")
	} else {
		check(true, "environment file", opts.EnvFile)
		envOK = true
	}

	if shell, err := exec.LookPath(opts.Shell); err != nil {
		check(false, "shell", fmt.Sprintf("%s: %v", opts.Shell, err))
	} else {
		check(true, "shell", shell)
	}

	// The interpreter check runs against the environment the target
	// would actually see: when the env file sources cleanly, its PATH
	// mutations (the venv) take part in resolution.
	env := os.Environ()
	if envOK {
		if sourced, err := envfile.Source(opts.EnvFile, opts.Shell, logger); err != nil {
			check(false, "environment file", fmt.Sprintf("sourcing failed: %v", err))
		} else {
			env = envfile.Apply(env, envfile.Diff(os.Environ(), sourced))
		}
	}
	resolved := resolveExecutable(opts.Python, env, logger)
	if _, err := lookPathIn(resolved, envValue(env, "PATH")); err != nil {
		check(false, "interpreter", fmt.Sprintf("%s: %v", opts.Python, err))
	} else {
		check(true, "interpreter", resolved)
	}

	if opts.Command != DefaultCommandTemplate {
		fmt.Fprintf(out, "- %-20s custom command template, not checked: %s\n", "target script", opts.Command)
	} else if selfDir != "" && err == nil {
		script := filepath.Join(selfDir, paths.TargetScript)
		if _, serr := os.Stat(script); serr != nil {
			check(false, "target script", fmt.Sprintf("%s: %v", script, serr))
		} else {
			check(true, "target script", script)
		}
	}

	return ok
}

// ShowEnv sources the environment file and prints the variables it would
// add or change, sorted, with sensitive values redacted unless
// showSecrets is set.
func ShowEnv(opts Options, out io.Writer, showSecrets bool, logger hclog.Logger) error {
	sourced, err := envfile.Source(opts.EnvFile, opts.Shell, logger)
	if err != nil {
		return err
	}

	mutations := envfile.Diff(os.Environ(), sourced)
	sort.Strings(mutations)

	if len(mutations) == 0 {
		fmt.Fprintf(out, "%s changes nothing in the current environment\n", opts.EnvFile)
		return nil
	}

	for _, m := range mutations {
		key, value, _ := strings.Cut(m, "=")
		if !showSecrets && isSensitiveKey(key) {
			value = "***"
		}
		fmt.Fprintf(out, "%s=%s\n", key, value)
	}
	return nil
}

func resolveInfoSelfDir(exePath string, opts Options) (string, error) {
	if opts.ScriptDir != "" {
		return filepath.Abs(opts.ScriptDir)
	}
	return ResolveSelfDir(exePath)
}

func presence(path string) string {
	if _, err := os.Stat(path); err != nil {
		return "missing"
	}
	return "present"
}
