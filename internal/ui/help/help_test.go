package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ezwrite/internal/keys"
)

func TestMarkdown_ListsEveryBinding(t *testing.T) {
	md := Markdown(keys.Editor)

	for _, section := range Sections {
		require.Contains(t, md, "## "+section)
	}
	for _, group := range keys.Editor.FullHelp() {
		for _, b := range group {
			require.Contains(t, md, "| `"+b.Help().Key+"` | "+b.Help().Desc+" |")
		}
	}
}

func TestRender_ContainsDescriptions(t *testing.T) {
	// glamour styles each word separately.
	out := ansi.Strip(Render(keys.Editor, 80))

	require.Contains(t, out, "delete left")
	require.Contains(t, out, "select all")
	require.NotContains(t, out, "| --- |", "tables are rendered, not raw")
}

func TestModel_Toggle(t *testing.T) {
	m := New(keys.Editor)
	require.False(t, m.Visible())

	m = m.Toggle()
	require.True(t, m.Visible())

	m = m.Hide()
	require.False(t, m.Visible())
}

func TestModel_Overlay(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", 100)+"\n", 120), "\n")
	m := New(keys.Editor).SetWidth(100)

	require.Equal(t, bg, m.Overlay(bg, 100, 120), "hidden overlay leaves the view alone")

	m = m.Toggle()
	out := m.Overlay(bg, 100, 120)
	require.Contains(t, ansi.Strip(out), "toggle help")
	require.Len(t, strings.Split(out, "\n"), 120)
}
