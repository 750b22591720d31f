package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEnvFile(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got := DefaultEnvFile()
	assert.Equal(t, filepath.Join(home, "dev", "NicLink", "pyenv_up.sh"), got)
}

func TestDefaultConfigFile_EnvOverride(t *testing.T) {
	t.Setenv("CHESSCLOCK_CONFIG", "/etc/niclink/clock.yaml")
	assert.Equal(t, "/etc/niclink/clock.yaml", DefaultConfigFile())
}

func TestDefaultConfigFile_EndsWithConfigName(t *testing.T) {
	t.Setenv("CHESSCLOCK_CONFIG", "")
	got := DefaultConfigFile()
	assert.True(t, strings.HasSuffix(got, "chessclock.yaml"), "got %q", got)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "dev", "NicLink"), ExpandHome("~/dev/NicLink"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/absolute/path", ExpandHome("/absolute/path"))
	assert.Equal(t, "relative/path", ExpandHome("relative/path"))
	assert.Equal(t, "", ExpandHome(""))
}
