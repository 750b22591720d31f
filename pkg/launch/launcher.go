// Package launch implements the chess-clock bootstrap sequence: resolve
// the launcher's own directory, source the NicLink environment file, and
// hand control to the standalone chess-clock program.
package launch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/niclink/chessclock-launcher/pkg/config"
	"github.com/niclink/chessclock-launcher/pkg/envfile"
	"github.com/niclink/chessclock-launcher/pkg/logging"
	"github.com/niclink/chessclock-launcher/pkg/utils/shellparse"
)

// Version of the chessclock launcher tools.
const Version = "0.2.0"

// LaunchWithLogLevel launches with explicit log level control
func LaunchWithLogLevel(exePath string, args []string, cliLogLevel, cliLogSource string) {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitInvalidArgs)
	}

	// Determine log level and source
	var logLevel string
	var logSource string

	if cliLogLevel != "" {
		logLevel = cliLogLevel
		logSource = cliLogSource
	} else if envLevel := os.Getenv("CHESSCLOCK_LAUNCHER_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
		logSource = "CHESSCLOCK_LAUNCHER_LOG_LEVEL"
	} else if envLevel := os.Getenv("CHESSCLOCK_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
		logSource = "CHESSCLOCK_LOG_LEVEL"
	} else if cfg.LogLevel != "" {
		logLevel = cfg.LogLevel
		logSource = "config file"
	} else {
		logLevel = "warn" // The original launcher script was silent
		logSource = "default"
	}

	// Parse JSON format from log level (e.g., "json:debug" or just "debug")
	jsonFormat := false
	actualLevel := logLevel
	if strings.HasPrefix(logLevel, "json") {
		jsonFormat = true
		parts := strings.Split(logLevel, ":")
		if len(parts) > 1 {
			actualLevel = parts[1]
		} else {
			actualLevel = "info"
		}
	}

	var output io.Writer = os.Stderr

	// Support log file output
	if logPath := os.Getenv("CHESSCLOCK_LOG_PATH"); logPath != "" {
		if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			output = file
		}
	}

	if !jsonFormat {
		output = logging.NewPrefixWriter(logging.LinePrefix(), output)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "chessclock-launcher",
		Level:      hclog.LevelFromString(actualLevel),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format without timezone
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
	logger.Debug("Log level", "level", actualLevel, "source", logSource)

	opts := FromEnvironment(cfg)

	userCwd, err := os.Getwd()
	if err != nil {
		logger.Error("❌ Failed to get current directory", "error", err)
		os.Exit(ExitIOError)
	}

	if isEnvTrue("CHESSCLOCK_LAUNCHER_CLI") {
		logger.Debug("💻 Running in CLI mode")
		runCLI(exePath, args, opts, userCwd, logger)
		return
	}

	code, err := Run(exePath, args, opts, userCwd, logger)
	if err != nil {
		logger.Error("❌ Launch failed", "error", err)
		os.Exit(ExitCodeFor(err))
	}
	os.Exit(code)
}

// Launch is the backward-compatible entry point
func Launch(exePath string, args []string) {
	LaunchWithLogLevel(exePath, args, "", "")
}

// Run performs the three launch steps and returns the target program's
// exit code. In exec mode it only returns on failure: on success the
// launcher process is replaced and never comes back.
func Run(exePath string, args []string, opts Options, userCwd string, logger hclog.Logger) (int, error) {
	// Step 1: resolve the self-directory.
	selfDir := opts.ScriptDir
	var err error
	if selfDir == "" {
		selfDir, err = ResolveSelfDir(exePath)
		if err != nil {
			return 0, err
		}
	} else {
		selfDir, err = filepath.Abs(selfDir)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrPathResolution, opts.ScriptDir, err)
		}
	}
	logger.Debug("📁 Self-directory resolved", "path", selfDir)

	// Step 2: source the environment file. A failure here aborts the
	// launch outright, so the target never starts against a partially
	// applied environment.
	parent := os.Environ()
	sourced, err := envfile.Source(opts.EnvFile, opts.Shell, logger)
	if err != nil {
		return 0, err
	}
	mutations := envfile.Diff(parent, sourced)
	env := envfile.Apply(parent, mutations)
	logger.Debug("🌱 Environment mutations applied", "count", len(mutations))

	// Step 3: hand off to the target program.
	cmd, err := BuildCommand(opts, selfDir, env, userCwd, args, logger)
	if err != nil {
		return 0, err
	}

	useExec := opts.ExecMode != config.ModeSpawn
	if runtime.GOOS == "windows" && useExec {
		logger.Info("💻 Windows detected - using spawn mode (exec mode not supported on Windows)")
		useExec = false
	}

	return executeCommand(cmd, useExec, logger)
}

// ExitCodeFor maps a launch error to the launcher's exit code taxonomy.
func ExitCodeFor(err error) int {
	switch {
	case errors.Is(err, ErrPathResolution):
		return ExitPathError
	case errors.Is(err, envfile.ErrEnvFileMissing), errors.Is(err, envfile.ErrSourceFailed):
		return ExitEnvFileError
	case errors.Is(err, ErrEmptyCommand),
		errors.Is(err, shellparse.ErrUnclosedQuote),
		errors.Is(err, shellparse.ErrTrailingEscape):
		return ExitInvalidArgs
	default:
		return ExitExecutionError
	}
}
