package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ezwrite/internal/config"
	"github.com/zjrosen/ezwrite/internal/flags"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckSource(t *testing.T) {
	dir := t.TempDir()
	md := writeFile(t, dir, "a.md", "# A\n")
	html := writeFile(t, dir, "a.html", "<p>x</p>")
	pdf := writeFile(t, dir, "a.pdf", "%PDF")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.txt"), 0o750))

	on := flags.New(map[string]bool{flags.FlagHTMLImport: true})
	off := flags.New(map[string]bool{flags.FlagHTMLImport: false})

	tests := []struct {
		name    string
		path    string
		reg     *flags.Registry
		wantErr string
	}{
		{"markdown", md, on, ""},
		{"html enabled", html, on, ""},
		{"html disabled", html, off, "HTML import is disabled"},
		{"unsupported", pdf, on, "unsupported file type: .pdf"},
		{"missing", filepath.Join(dir, "nope.txt"), on, "no such file"},
		{"directory", filepath.Join(dir, "d.txt"), on, "is a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSource(tt.path, tt.reg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(cfgPath))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		treeStats = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTreeCommand(t *testing.T) {
	file := writeFile(t, t.TempDir(), "draft.txt", "It is.\n")

	out, err := runRoot(t, "tree", file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, "document (1)", lines[0])
	require.Equal(t, "  paragraph (1)", lines[1])
	require.Contains(t, out, `token "It"`)
	require.Contains(t, out, `token "\n"`)
}

func TestTreeCommand_Stats(t *testing.T) {
	file := writeFile(t, t.TempDir(), "book.md", "# One\n\nBody.\n\n# Two\n\nMore.\n")

	out, err := runRoot(t, "tree", "--stats", file)
	require.NoError(t, err)
	require.Contains(t, out, "documents  2")
	require.Contains(t, out, "paragraphs 4")
}

func TestTreeCommand_Unsupported(t *testing.T) {
	file := writeFile(t, t.TempDir(), "image.png", "x")

	_, err := runRoot(t, "tree", file)
	require.ErrorContains(t, err, "unsupported file type")
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3")
	require.Equal(t, "1.2.3", rootCmd.Version)
}
