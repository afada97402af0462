package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestSaveValue_CreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SaveValue(path, []string{"ui", "show_status_bar"}, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "ui:\n  show_status_bar: false\n", string(data))
}

func TestSaveValue_PreservesOtherConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveValue(path, []string{"ui", "show_status_bar"}, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "# ezwrite configuration")
	require.Contains(t, content, "show_status_bar: false")
	require.Contains(t, content, "# Show status bar at bottom")
	require.Contains(t, content, "paragraph_indent: 4")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	SetDefaults(v)
	cfg, err := Load(v)
	require.NoError(t, err)
	require.False(t, cfg.UI.ShowStatusBar)
	require.True(t, cfg.Editor.JoinSpace)
}

func TestSaveValue_AddsMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  join_space: true\n"), 0o600))

	require.NoError(t, SaveValue(path, []string{"flags", "html-import"}, false))
	require.NoError(t, SaveValue(path, []string{"editor", "join_space"}, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "editor:\n  join_space: false\nflags:\n  html-import: false\n", string(data))
}

func TestSaveValue_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: plain\n"), 0o600))

	require.ErrorContains(t, SaveValue(path, []string{"ui", "show_status_bar"}, true), "ui is not a mapping")
	require.ErrorContains(t, SaveValue(path, nil, true), "empty key path")

	list := filepath.Join(t.TempDir(), "list.yaml")
	require.NoError(t, os.WriteFile(list, []byte("- a\n- b\n"), 0o600))
	require.ErrorContains(t, SaveValue(list, []string{"x"}, 1), "not a mapping")
}
