package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".config", "ezwrite"), ConfigDir())
	require.Equal(t, filepath.Join(home, ".config", "ezwrite", "config.yaml"), ConfigFile())
	require.Equal(t, filepath.Join(home, ".config", "ezwrite", "state.db"), StateFile())
	require.Equal(t, filepath.Join(home, ".config", "ezwrite", "traces", "traces.jsonl"), TracesFile())
}

func TestResolveConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	require.Equal(t, "/etc/ezwrite.yaml", ResolveConfig("/etc/ezwrite.yaml"))
	require.Equal(t, ConfigFile(), ResolveConfig(""))

	require.NoError(t, os.MkdirAll(filepath.Dir(LocalConfigFile), 0o750))
	require.NoError(t, os.WriteFile(LocalConfigFile, []byte("ui: {}\n"), 0o600))
	require.Equal(t, LocalConfigFile, ResolveConfig(""))
}
