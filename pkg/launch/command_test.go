package launch

import (
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestBuildCommand_SubstitutesSelfDir(t *testing.T) {
	logger := hclog.NewNullLogger()
	opts := Options{
		Python:  "python3",
		Command: DefaultCommandTemplate,
	}

	cmd, err := BuildCommand(opts, "/opt/niclink", nil, "/tmp", nil, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cmd.Args) != 2 {
		t.Fatalf("argv = %v, want interpreter plus script", cmd.Args)
	}
	if cmd.Args[1] != "/opt/niclink/standalone_chessclock.py" {
		t.Errorf("script arg = %q, want the self-directory substituted in", cmd.Args[1])
	}
	if cmd.Dir != "/tmp" {
		t.Errorf("cmd.Dir = %q, want /tmp", cmd.Dir)
	}
}

func TestBuildCommand_SelfDirWithSpaces(t *testing.T) {
	opts := Options{Python: "python3", Command: DefaultCommandTemplate}

	cmd, err := BuildCommand(opts, "/opt/chess clocks", nil, "/tmp", nil, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Args[1] != "/opt/chess clocks/standalone_chessclock.py" {
		t.Errorf("script arg = %q, spaces must survive the template quoting", cmd.Args[1])
	}
}

func TestBuildCommand_ForwardsExtraArgs(t *testing.T) {
	opts := Options{Python: "python3", Command: DefaultCommandTemplate}

	cmd, err := BuildCommand(opts, "/opt/niclink", nil, "/tmp", []string{"--debug"}, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := cmd.Args[len(cmd.Args)-1]
	if last != "--debug" {
		t.Errorf("last arg = %q, want forwarded --debug", last)
	}
}

func TestBuildCommand_ExportsSelfDir(t *testing.T) {
	opts := Options{Python: "python3", Command: DefaultCommandTemplate}
	env := []string{"PATH=/usr/bin"}

	cmd, err := BuildCommand(opts, "/opt/niclink", env, "/tmp", nil, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, e := range cmd.Env {
		if e == "CHESSCLOCK_SELF_DIR=/opt/niclink" {
			found = true
		}
	}
	if !found {
		t.Errorf("cmd.Env = %v, want CHESSCLOCK_SELF_DIR exported", cmd.Env)
	}
}

func TestBuildCommand_EmptyTemplate(t *testing.T) {
	opts := Options{Python: "python3", Command: "   "}

	_, err := BuildCommand(opts, "/opt/niclink", nil, "/tmp", nil, hclog.NewNullLogger())
	if !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("error = %v, want ErrEmptyCommand", err)
	}
}

func TestBuildCommand_BrokenTemplate(t *testing.T) {
	opts := Options{Python: "python3", Command: `python3 "unterminated`}

	_, err := BuildCommand(opts, "/opt/niclink", nil, "/tmp", nil, hclog.NewNullLogger())
	if err == nil || !strings.Contains(err.Error(), "unclosed quote") {
		t.Errorf("error = %v, want an unclosed quote parse failure", err)
	}
}
