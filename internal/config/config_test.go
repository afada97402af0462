package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.Editor.JoinSpace)
	require.Equal(t, 75*time.Millisecond, cfg.Editor.LayoutDebounce)
	require.Len(t, cfg.Editor.CursorColours, 2)
	require.Equal(t, 4, cfg.UI.ParagraphIndent)
	require.True(t, cfg.UI.WatchSource)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.True(t, cfg.Flags["html-import"])
	require.NoError(t, Validate(cfg))
}

func TestValidateEditor(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EditorConfig)
		wantErr string
	}{
		{"defaults", func(*EditorConfig) {}, ""},
		{"negative debounce", func(e *EditorConfig) { e.LayoutDebounce = -time.Second }, "layout_debounce"},
		{"negative blink", func(e *EditorConfig) { e.BlinkInterval = -1 }, "blink_interval"},
		{"blinking without colours", func(e *EditorConfig) { e.CursorColours = nil }, "at least one colour"},
		{"no blink no colours", func(e *EditorConfig) { e.BlinkInterval, e.CursorColours = 0, nil }, ""},
		{"short hex", func(e *EditorConfig) { e.CursorColours = []string{"#fff"} }, ""},
		{"named colour", func(e *EditorConfig) { e.CursorColours = []string{"purple"} }, "cursor_colours[0]"},
		{"bad digit", func(e *EditorConfig) { e.CursorColours = []string{"#A855F7", "#GGGGGG"} }, "cursor_colours[1]"},
		{"empty colour", func(e *EditorConfig) { e.CursorColours = []string{""} }, "cursor_colours[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Defaults().Editor
			tt.mutate(&e)
			err := ValidateEditor(e)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateUI(t *testing.T) {
	tests := []struct {
		name    string
		ui      UIConfig
		wantErr string
	}{
		{"defaults", Defaults().UI, ""},
		{"negative indent", UIConfig{ParagraphIndent: -1}, "paragraph_indent"},
		{"huge indent", UIConfig{ParagraphIndent: 17}, "paragraph_indent"},
		{"negative width", UIConfig{MaxWidth: -5}, "max_width"},
		{"width below indent", UIConfig{ParagraphIndent: 4, MaxWidth: 4}, "must exceed"},
		{"fixed width", UIConfig{ParagraphIndent: 4, MaxWidth: 72}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUI(tt.ui)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		tracing TracingConfig
		wantErr string
	}{
		{"empty", TracingConfig{}, ""},
		{"sample rate too high", TracingConfig{SampleRate: 1.5}, "sample_rate"},
		{"sample rate negative", TracingConfig{SampleRate: -0.1}, "sample_rate"},
		{"unknown exporter", TracingConfig{Exporter: "jaeger"}, "tracing.exporter"},
		{"otlp without endpoint", TracingConfig{Enabled: true, Exporter: "otlp"}, "otlp_endpoint"},
		{"otlp disabled", TracingConfig{Exporter: "otlp"}, ""},
		{"file without path", TracingConfig{Enabled: true, Exporter: "file"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.tracing)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTracingConfig_Provider(t *testing.T) {
	cfg := TracingConfig{Enabled: true, Exporter: "stdout", SampleRate: 0.5, ServiceName: "svc"}

	p := cfg.Provider()

	require.True(t, p.Enabled)
	require.Equal(t, "stdout", p.Exporter)
	require.Equal(t, 0.5, p.SampleRate)
	require.Equal(t, "svc", p.ServiceName)
	require.Equal(t, DefaultTracesFilePath(), p.FilePath)

	cfg.FilePath = "/tmp/x.jsonl"
	require.Equal(t, "/tmp/x.jsonl", cfg.Provider().FilePath)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestTemplateMatchesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	require.Equal(t, Defaults(), cfg)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
editor:
  join_space: false
  layout_debounce: 1s
ui:
  max_width: 60
flags:
  mouse-select: false
`)))
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	require.False(t, cfg.Editor.JoinSpace)
	require.Equal(t, time.Second, cfg.Editor.LayoutDebounce)
	require.Equal(t, 530*time.Millisecond, cfg.Editor.BlinkInterval, "unset keys keep defaults")
	require.Equal(t, 60, cfg.UI.MaxWidth)
	require.False(t, cfg.Flags["mouse-select"])
	require.True(t, cfg.Flags["html-import"])
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader("tracing:\n  sample_rate: 3\n")))
	SetDefaults(v)

	_, err := Load(v)
	require.ErrorContains(t, err, "invalid configuration")
}
