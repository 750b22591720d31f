package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/niclink/chessclock-launcher/pkg/config"
	"github.com/niclink/chessclock-launcher/pkg/launch"
	"github.com/niclink/chessclock-launcher/pkg/logging"
)

var (
	configPath  string
	envFilePath string
	pythonBin   string
	scriptDir   string
	shellBin    string
	spawnMode   bool
	logLevel    string
	showSecrets bool
	versionFlag bool
	rootCmd     *cobra.Command
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// resolveOptions layers flags over CHESSCLOCK_* env and the config file.
func resolveOptions() (launch.Options, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return launch.Options{}, err
	}

	opts := launch.FromEnvironment(cfg)
	if envFilePath != "" {
		opts.EnvFile = envFilePath
	}
	if pythonBin != "" {
		opts.Python = pythonBin
	}
	if scriptDir != "" {
		opts.ScriptDir = scriptDir
	}
	if shellBin != "" {
		opts.Shell = shellBin
	}
	if spawnMode {
		opts.ExecMode = config.ModeSpawn
	}
	return opts, nil
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "clockctl",
		Short: "Diagnose and drive the NicLink chess clock launcher",
		Long:  `Diagnose and drive the NicLink chess clock launcher`,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to chessclock.yaml (defaults to platform config dir)")
	rootCmd.PersistentFlags().StringVar(&envFilePath, "env-file", "", "Environment activation script to source")
	rootCmd.PersistentFlags().StringVar(&pythonBin, "python", "", "Python interpreter to launch with")
	rootCmd.PersistentFlags().StringVar(&scriptDir, "script-dir", "", "Directory containing the chess clock script")
	rootCmd.PersistentFlags().StringVar(&shellBin, "shell", "", "Shell used to source the environment file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check env file, shell, interpreter and target script",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions()
			if err != nil {
				return err
			}
			exePath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get executable path: %w", err)
			}
			logger := logging.NewLogger("clockctl", levelOrDefault(), nil)
			if !launch.Doctor(exePath, opts, os.Stdout, logger) {
				os.Exit(1)
			}
			return nil
		},
	}

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show what sourcing the environment file would change",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions()
			if err != nil {
				return err
			}
			logger := logging.NewLogger("clockctl", levelOrDefault(), nil)
			return launch.ShowEnv(opts, os.Stdout, showSecrets, logger)
		},
	}
	envCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print sensitive values instead of redacting them")

	runCmd := &cobra.Command{
		Use:   "run [args...]",
		Short: "Launch the chess clock through the full bootstrap sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions()
			if err != nil {
				return err
			}
			exePath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get executable path: %w", err)
			}
			userCwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			logger := logging.NewLogger("clockctl", levelOrDefault(), nil)
			code, err := launch.Run(exePath, args, opts, userCwd, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(launch.ExitCodeFor(err))
			}
			os.Exit(code)
			return nil
		},
	}
	runCmd.Flags().BoolVar(&spawnMode, "spawn", false, "Spawn the target instead of replacing the process")

	rootCmd.AddCommand(doctorCmd, envCmd, runCmd)
}

func levelOrDefault() string {
	if logLevel != "" {
		return logLevel
	}
	return logging.GetLogLevel()
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("clockctl %s\n", launch.Version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
