// Package config loads the optional launcher configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/niclink/chessclock-launcher/internal/paths"
)

// Exec mode values accepted in config and CHESSCLOCK_EXEC_MODE.
const (
	ModeExec  = "exec"
	ModeSpawn = "spawn"
)

// Config is the top-level launcher configuration. Every field is
// optional; environment variables and CLI flags override it.
type Config struct {
	EnvFile   string `yaml:"env_file,omitempty"`   // environment activation script
	Python    string `yaml:"python,omitempty"`     // interpreter name or path
	ScriptDir string `yaml:"script_dir,omitempty"` // overrides the launcher's own directory
	Command   string `yaml:"command,omitempty"`    // full command template, {selfdir}/{python} placeholders
	ExecMode  string `yaml:"exec_mode,omitempty"`  // "exec" or "spawn"
	Shell     string `yaml:"shell,omitempty"`      // shell used to source env_file
	LogLevel  string `yaml:"log_level,omitempty"`
}

// Load reads a YAML config from path. A missing file is not an error: the
// launcher must keep working with nothing but its defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if cfg.ExecMode != "" && cfg.ExecMode != ModeExec && cfg.ExecMode != ModeSpawn {
		return nil, fmt.Errorf("config file %s: invalid exec_mode %q (want %q or %q)",
			path, cfg.ExecMode, ModeExec, ModeSpawn)
	}

	cfg.EnvFile = paths.ExpandHome(cfg.EnvFile)
	cfg.ScriptDir = paths.ExpandHome(cfg.ScriptDir)
	return &cfg, nil
}

// LoadDefault loads the config from the platform default location.
func LoadDefault() (*Config, error) {
	return Load(paths.DefaultConfigFile())
}
