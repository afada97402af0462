package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults registers every default with v so that keys missing from the
// config file still unmarshal to their default values.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("editor.join_space", d.Editor.JoinSpace)
	v.SetDefault("editor.layout_debounce", d.Editor.LayoutDebounce)
	v.SetDefault("editor.blink_interval", d.Editor.BlinkInterval)
	v.SetDefault("editor.cursor_colours", d.Editor.CursorColours)
	v.SetDefault("editor.restore_position", d.Editor.RestorePosition)
	v.SetDefault("ui.paragraph_indent", d.UI.ParagraphIndent)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui.watch_source", d.UI.WatchSource)
	v.SetDefault("ui.max_width", d.UI.MaxWidth)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	for name, on := range d.Flags {
		v.SetDefault("flags."+name, on)
	}
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
