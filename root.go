package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"eepromed/internal/config"
	"eepromed/internal/edit"
	"eepromed/internal/editor"
	"eepromed/internal/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	outPath    string
	debug      bool
	quiet      bool
	jsonOut    bool

	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "eepromed [file]",
	Short: "Edit 256-byte serial EEPROM images",
	Long: `eepromed shows an EEPROM image next to an edited copy of it and lets you
write single bytes, search for 1-4 byte patterns and replace them. The edited
copy is always saved to a new file; the source image is never overwritten.

Without a subcommand the interactive editor is started.`,
	Version:       "0.1.0",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditor(args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/eepromed/eepromed.toml)")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "Output file for the edited image")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Write debug logs to ~/.eepromed/logs")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and logging before any command runs.
func setup() error {
	if err := logger.Init(logger.Options{Enabled: debug, Level: slog.LevelDebug}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		// Keep going with defaults, like a missing file.
		logger.Warn("config load failed", "path", configPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: ignoring config: %v\n", err)
		loaded = config.DefaultConfig()
	}
	cfg = loaded
	return nil
}

func runEditor(args []string) error {
	source := cfg.Editor.InputFile
	if len(args) > 0 {
		source = args[0]
	}
	if source == "" {
		return errors.New("no input file: pass one or set editor.input_file in the config")
	}

	doc, err := edit.Open(source)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", source, err)
	}

	m := editor.NewModel(doc, cfg, editor.Options{
		Source:     source,
		Output:     outPath,
		ConfigPath: configPath,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// outputFile is where headless commands save the edited image.
func outputFile() string {
	if outPath != "" {
		return outPath
	}
	return cfg.Editor.OutputFile
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// jsonInts keeps empty offset lists encoding as [] rather than null.
func jsonInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}

func formatOffsets(offsets []int) string {
	if len(offsets) == 0 {
		return "(none)"
	}
	parts := make([]string, len(offsets))
	for i, o := range offsets {
		parts[i] = fmt.Sprintf("%04X", o)
	}
	return strings.Join(parts, " ")
}
