// Package config provides configuration types and defaults for ezwrite.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/ezwrite/internal/log"
	"github.com/zjrosen/ezwrite/internal/paths"
	"github.com/zjrosen/ezwrite/internal/tracing"
)

// Config holds all configuration options for ezwrite.
type Config struct {
	Editor  EditorConfig    `mapstructure:"editor"`
	UI      UIConfig        `mapstructure:"ui"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// EditorConfig holds editing behaviour options.
type EditorConfig struct {
	// JoinSpace inserts a space token when two paragraphs are merged.
	JoinSpace bool `mapstructure:"join_space"`

	// LayoutDebounce is how long layout requests are coalesced before a pass.
	LayoutDebounce time.Duration `mapstructure:"layout_debounce"`

	// BlinkInterval is the cursor blink period. Zero disables blinking.
	BlinkInterval time.Duration `mapstructure:"blink_interval"`

	// CursorColours are cycled by the blinking cursor.
	CursorColours []string `mapstructure:"cursor_colours"`

	// RestorePosition reopens a file at the cursor position it was closed at.
	RestorePosition bool `mapstructure:"restore_position"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ParagraphIndent int  `mapstructure:"paragraph_indent"`
	ShowStatusBar   bool `mapstructure:"show_status_bar"`
	WatchSource     bool `mapstructure:"watch_source"` // Reload when the file changes on disk
	MaxWidth        int  `mapstructure:"max_width"`    // 0 uses the terminal width
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether command tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/ezwrite/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`

	ServiceName string `mapstructure:"service_name"`
}

// Provider converts the section to the tracing package's config. An empty
// file path falls back to DefaultTracesFilePath.
func (t TracingConfig) Provider() tracing.Config {
	cfg := tracing.Config{
		Enabled:      t.Enabled,
		Exporter:     t.Exporter,
		FilePath:     t.FilePath,
		OTLPEndpoint: t.OTLPEndpoint,
		SampleRate:   t.SampleRate,
		ServiceName:  t.ServiceName,
	}
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	return cfg
}

// DefaultTracesFilePath returns ~/.config/ezwrite/traces/traces.jsonl.
func DefaultTracesFilePath() string {
	return paths.TracesFile()
}

// DefaultStatePath returns ~/.config/ezwrite/state.db, where cursor positions
// are remembered between sessions.
func DefaultStatePath() string {
	return paths.StateFile()
}

// Defaults returns the default configuration.
func Defaults() Config {
	def := tracing.DefaultConfig()
	return Config{
		Editor: EditorConfig{
			JoinSpace:       true,
			LayoutDebounce:  75 * time.Millisecond,
			BlinkInterval:   530 * time.Millisecond,
			CursorColours:   []string{"#A855F7", "#EAB308"},
			RestorePosition: true,
		},
		UI: UIConfig{
			ParagraphIndent: 4,
			ShowStatusBar:   true,
			WatchSource:     true,
		},
		Tracing: TracingConfig{
			Enabled:      def.Enabled,
			Exporter:     def.Exporter,
			OTLPEndpoint: def.OTLPEndpoint,
			SampleRate:   def.SampleRate,
			ServiceName:  def.ServiceName,
		},
		Flags: map[string]bool{
			"html-import":  true,
			"mouse-select": true,
		},
	}
}

// Validate checks every section of cfg.
func Validate(cfg Config) error {
	if err := ValidateEditor(cfg.Editor); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateEditor checks editor configuration for errors.
func ValidateEditor(e EditorConfig) error {
	if e.LayoutDebounce < 0 {
		return fmt.Errorf("editor.layout_debounce must not be negative, got %v", e.LayoutDebounce)
	}
	if e.BlinkInterval < 0 {
		return fmt.Errorf("editor.blink_interval must not be negative, got %v", e.BlinkInterval)
	}
	if e.BlinkInterval > 0 && len(e.CursorColours) == 0 {
		return fmt.Errorf("editor.cursor_colours needs at least one colour when blinking")
	}
	for i, c := range e.CursorColours {
		if !isHexColour(c) {
			return fmt.Errorf("editor.cursor_colours[%d]: %q is not a hex colour like #A855F7", i, c)
		}
	}
	return nil
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	if ui.ParagraphIndent < 0 || ui.ParagraphIndent > 16 {
		return fmt.Errorf("ui.paragraph_indent must be between 0 and 16, got %d", ui.ParagraphIndent)
	}
	if ui.MaxWidth < 0 {
		return fmt.Errorf("ui.max_width must not be negative, got %d", ui.MaxWidth)
	}
	if ui.MaxWidth > 0 && ui.MaxWidth <= ui.ParagraphIndent {
		return fmt.Errorf("ui.max_width (%d) must exceed ui.paragraph_indent (%d)", ui.MaxWidth, ui.ParagraphIndent)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

func isHexColour(s string) bool {
	if (len(s) != 7 && len(s) != 4) || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// DefaultConfigTemplate returns the commented config file written on first
// run.
func DefaultConfigTemplate() string {
	return `# ezwrite configuration

# Editing behaviour
editor:
  join_space: true         # Insert a space when backspace merges two paragraphs
  layout_debounce: 75ms    # Coalesce layout passes after edits
  blink_interval: 530ms    # Cursor blink period (0 disables blinking)
  cursor_colours:          # Colours the cursor cycles through
    - "#A855F7"
    - "#EAB308"
  restore_position: true   # Reopen files where the cursor was left

# UI settings
ui:
  paragraph_indent: 4      # First-line indent in cells
  show_status_bar: true    # Show status bar at bottom (toggle with ctrl+b)
  watch_source: true       # Reload when the file changes on disk and is unmodified
  # max_width: 80          # Wrap at this width instead of the terminal width

# Command tracing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/ezwrite/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)

# Feature flags
# flags:
#   html-import: true    # Open .html/.htm files
#   mouse-select: true   # Drag with the mouse to select
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
