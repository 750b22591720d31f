package launch

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestSetEnv(t *testing.T) {
	env := []string{"PATH=/usr/bin", "HOME=/home/nrv"}

	env = setEnv(env, "PATH", "/venv/bin")
	if env[0] != "PATH=/venv/bin" {
		t.Errorf("existing key not replaced: %v", env)
	}

	env = setEnv(env, "CHESSCLOCK_SELF_DIR", "/opt/niclink")
	if env[len(env)-1] != "CHESSCLOCK_SELF_DIR=/opt/niclink" {
		t.Errorf("new key not appended: %v", env)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	sensitive := []string{"LICHESS_TOKEN", "BERSERK_TOKEN", "GITHUB_TOKEN", "MY_SECRET", "OPENAI_API_KEY", "PASSWORD", "SSH_AUTH_SOCK"}
	for _, key := range sensitive {
		if !isSensitiveKey(key) {
			t.Errorf("isSensitiveKey(%q) = false, want true", key)
		}
	}

	plain := []string{"PATH", "HOME", "VIRTUAL_ENV", "CHESSCLOCK_SELF_DIR", "TOKENIZER"}
	for _, key := range plain {
		if isSensitiveKey(key) {
			t.Errorf("isSensitiveKey(%q) = true, want false", key)
		}
	}
}

func TestIsEnvTrue(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		t.Setenv("CHESSCLOCK_TEST_FLAG", v)
		if !isEnvTrue("CHESSCLOCK_TEST_FLAG") {
			t.Errorf("isEnvTrue with %q = false, want true", v)
		}
	}
	for _, v := range []string{"", "0", "false", "off", "anything"} {
		t.Setenv("CHESSCLOCK_TEST_FLAG", v)
		if isEnvTrue("CHESSCLOCK_TEST_FLAG") {
			t.Errorf("isEnvTrue with %q = true, want false", v)
		}
	}
}

func TestResolveExecutable_AbsoluteUnixPathFallsBackToBasename(t *testing.T) {
	logger := hclog.NewNullLogger()

	// A path that exists on no machine: resolution must degrade to the
	// basename rather than hand exec a known-bad absolute path.
	got := resolveExecutable("/nonexistent/prefix/definitely-not-a-real-interpreter", nil, logger)
	if got != "definitely-not-a-real-interpreter" {
		t.Errorf("resolveExecutable = %q, want bare basename", got)
	}
}

func TestResolveExecutable_FindsShellViaPath(t *testing.T) {
	logger := hclog.NewNullLogger()

	got := resolveExecutable("/bin/sh", nil, logger)
	if got == "sh" {
		t.Skip("no sh on PATH in this environment")
	}
	if !filepath.IsAbs(got) {
		t.Errorf("resolveExecutable(/bin/sh) = %q, want an absolute PATH hit", got)
	}
}

func TestResolveExecutable_UsesTargetEnvironmentPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub interpreter test needs Unix permissions")
	}

	dir := t.TempDir()
	stub := filepath.Join(dir, "niclink-fake-python")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	// The stub is reachable only through the env slice's PATH, never the
	// launcher's own.
	env := []string{"PATH=" + dir}
	got := resolveExecutable("niclink-fake-python", env, hclog.NewNullLogger())
	if got != stub {
		t.Errorf("resolveExecutable = %q, want the target-PATH hit %q", got, stub)
	}
}

func TestResolveExecutable_TargetPathShadowsLauncherPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub interpreter test needs Unix permissions")
	}

	venvBin := t.TempDir()
	venvPython := filepath.Join(venvBin, "python3")
	if err := os.WriteFile(venvPython, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	env := []string{"PATH=" + venvBin + ":" + os.Getenv("PATH")}
	got := resolveExecutable("python3", env, hclog.NewNullLogger())
	if got != venvPython {
		t.Errorf("resolveExecutable = %q, want the prepended venv entry %q", got, venvPython)
	}
}

func TestLookPathIn_ExplicitPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs Unix permissions")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "run.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := lookPathIn(script, "")
	if err != nil || got != script {
		t.Errorf("lookPathIn(%q) = %q, %v; want the path back", script, got, err)
	}

	if _, err := lookPathIn(filepath.Join(dir, "missing"), ""); err == nil {
		t.Error("lookPathIn accepted a nonexistent explicit path")
	}
}
