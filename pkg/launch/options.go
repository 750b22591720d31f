package launch

import (
	"os"

	"github.com/niclink/chessclock-launcher/internal/paths"
	"github.com/niclink/chessclock-launcher/pkg/config"
	"github.com/niclink/chessclock-launcher/pkg/envfile"
)

const (
	// DefaultPython is the interpreter used when nothing overrides it.
	DefaultPython = "python3"

	// DefaultCommandTemplate launches the chess clock from the launcher's
	// own directory. {python} and {selfdir} are substituted before shell
	// word splitting; the quotes keep directories with spaces intact.
	DefaultCommandTemplate = `{python} "{selfdir}/` + paths.TargetScript + `"`
)

// Options carries everything the launch sequence needs. Precedence:
// CLI flags (clockctl) > CHESSCLOCK_* environment > config file > defaults.
type Options struct {
	EnvFile   string // environment activation script to source
	Python    string // interpreter name or path
	ScriptDir string // overrides the resolved self-directory when set
	Command   string // command template with {python}/{selfdir} placeholders
	ExecMode  string // config.ModeExec or config.ModeSpawn
	Shell     string // shell used for sourcing EnvFile
}

// FromEnvironment resolves options from CHESSCLOCK_* variables layered
// over cfg. A nil cfg behaves like an empty config file.
func FromEnvironment(cfg *config.Config) Options {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return Options{
		EnvFile:   paths.ExpandHome(firstNonEmpty(os.Getenv("CHESSCLOCK_ENV_FILE"), cfg.EnvFile, paths.DefaultEnvFile())),
		Python:    firstNonEmpty(os.Getenv("CHESSCLOCK_PYTHON"), cfg.Python, DefaultPython),
		ScriptDir: paths.ExpandHome(firstNonEmpty(os.Getenv("CHESSCLOCK_SCRIPT_DIR"), cfg.ScriptDir, "")),
		Command:   firstNonEmpty(os.Getenv("CHESSCLOCK_COMMAND"), cfg.Command, DefaultCommandTemplate),
		ExecMode:  firstNonEmpty(os.Getenv("CHESSCLOCK_EXEC_MODE"), cfg.ExecMode, config.ModeExec),
		Shell:     firstNonEmpty(os.Getenv("CHESSCLOCK_SHELL"), cfg.Shell, envfile.Shell()),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
