package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/ezwrite/internal/app"
	"github.com/zjrosen/ezwrite/internal/config"
	"github.com/zjrosen/ezwrite/internal/flags"
	"github.com/zjrosen/ezwrite/internal/importer"
	"github.com/zjrosen/ezwrite/internal/log"
	"github.com/zjrosen/ezwrite/internal/paths"
	"github.com/zjrosen/ezwrite/internal/state"
	"github.com/zjrosen/ezwrite/internal/tracing"
)

func init() {
	// Query the terminal background before the program starts so the OSC 11
	// reply cannot land in the input stream.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:     "ezwrite <file>",
	Short:   "A structured prose editor for the terminal",
	Long:    `ezwrite edits plain text, markdown and HTML as a tree of chapters, paragraphs, sentences and words.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/ezwrite/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also EZWRITE_DEBUG=1)")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload the file when it changes on disk")
	rootCmd.Flags().Int("width", 0,
		"wrap at this width instead of the terminal width")

	_ = viper.BindPFlag("ui.max_width", rootCmd.Flags().Lookup("width"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix("EZWRITE")

	// --config, then .ezwrite/config.yaml, then ~/.config/ezwrite/config.yaml.
	resolved := paths.ResolveConfig(cfgFile)
	if resolved == paths.ConfigFile() {
		viper.AddConfigPath(paths.ConfigDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	} else {
		viper.SetConfigFile(resolved)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// First run: write the commented defaults for the user to edit.
			defaultPath := paths.ConfigFile()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		} else {
			cfgErr = fmt.Errorf("reading config: %w", err)
			return
		}
	}

	cfg, cfgErr = config.Load(viper.GetViper())
}

// initLogging enables the debug log when asked for. The returned cleanup is
// never nil.
func initLogging() (func(), error) {
	if os.Getenv("EZWRITE_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("EZWRITE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	level, err := log.ParseLevel(os.Getenv("EZWRITE_LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.SetMinLevel(level)
	log.Info(log.CatConfig, "ezwrite starting", "debug", true, "logPath", logPath, "version", version)
	return cleanup, nil
}

// checkSource rejects files the importers cannot open, or that a disabled
// feature flag keeps closed.
func checkSource(path string, reg *flags.Registry) error {
	if !importer.IsSupported(path) {
		return fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
	switch filepath.Ext(path) {
	case ".html", ".htm":
		if !reg.Enabled(flags.FlagHTMLImport) {
			return fmt.Errorf("HTML import is disabled (flags.%s)", flags.FlagHTMLImport)
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func runApp(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	path := args[0]
	if err := checkSource(path, flags.New(cfg.Flags)); err != nil {
		return err
	}

	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.UI.WatchSource = false
	}

	provider, err := tracing.NewProvider(cfg.Tracing.Provider())
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	var store *state.Store
	if cfg.Editor.RestorePosition {
		store, err = state.Open(config.DefaultStatePath())
		if err != nil {
			// Remembered positions are a convenience; edit without them.
			log.ErrorErr(log.CatState, "Failed to open state database", err)
			store = nil
		} else {
			defer func() { _ = store.Close() }()
		}
	}

	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = paths.ConfigFile()
	}

	zones := zone.New()
	model, err := app.New(app.Options{
		Path:       path,
		ConfigPath: configFilePath,
		Config:     cfg,
		Tracer:     provider.Tracer(),
		Store:      store,
		Zones:      zones,
		Debug:      debugFlag || os.Getenv("EZWRITE_DEBUG") != "",
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()

	// Close the final model so its last cursor position is remembered.
	if m, ok := final.(app.Model); ok {
		model = m
	}
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
