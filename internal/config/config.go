package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// DefaultOutputFile is where the edited image is saved unless configured.
const DefaultOutputFile = "EEPROM_edited.bin"

type Theme struct {
	SelectedColor    string `toml:"selected_color"`
	JumpedColor      string `toml:"jumped_color"`
	MatchColor       string `toml:"match_color"`
	ChangedColor     string `toml:"changed_color"`
	OffsetColor      string `toml:"offset_color"`
	TitleColor       string `toml:"title_color"`
	BorderColor      string `toml:"border_color"`
	LegendBackground string `toml:"legend_background"`
	LegendHighlight  string `toml:"legend_highlight"`
	FocusColor       string `toml:"focus_color"`
	ErrorColor       string `toml:"error_color"`
	DisabledColor    string `toml:"disabled_color"`
}

type Editor struct {
	InputFile  string `toml:"input_file"`
	OutputFile string `toml:"output_file"`
}

type Config struct {
	Theme  Theme  `toml:"theme"`
	Editor Editor `toml:"editor"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme: Theme{
			SelectedColor:    "#00FF00",
			JumpedColor:      "#FFFF00",
			MatchColor:       "#FFA500",
			ChangedColor:     "#FF5F87",
			OffsetColor:      "#888888",
			TitleColor:       "#FFFFFF",
			BorderColor:      "#0000FF",
			LegendBackground: "#0000FF",
			LegendHighlight:  "#FF0000",
			FocusColor:       "#FF00FF",
			ErrorColor:       "#FF0000",
			DisabledColor:    "#666666",
		},
		Editor: Editor{
			OutputFile: DefaultOutputFile,
		},
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "eepromed.toml"
	}
	return filepath.Join(home, ".config", "eepromed", "eepromed.toml")
}

// Load reads the config at path, or at ConfigPath when path is empty. A
// missing file yields the defaults; keys absent from the file keep theirs.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = ConfigPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, err
	}

	if cfg.Editor.OutputFile == "" {
		cfg.Editor.OutputFile = DefaultOutputFile
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

type Styles struct {
	Selected        lipgloss.Style
	Jumped          lipgloss.Style
	Match           lipgloss.Style
	Changed         lipgloss.Style
	Offset          lipgloss.Style
	Title           lipgloss.Style
	Panel           lipgloss.Style
	Legend          lipgloss.Style
	LegendHighlight lipgloss.Style
	Label           lipgloss.Style
	FocusedLabel    lipgloss.Style
	Status          lipgloss.Style
	Error           lipgloss.Style
	Disabled        lipgloss.Style
	Normal          lipgloss.Style
	HelpKey         lipgloss.Style
	HelpDesc        lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.SelectedColor)).
			Bold(true),
		Jumped: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.JumpedColor)).
			Bold(true),
		Match: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.MatchColor)),
		Changed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ChangedColor)),
		Offset: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.OffsetColor)),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TitleColor)).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.BorderColor)).
			Padding(0, 1),
		Legend: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color("#FFFFFF")),
		LegendHighlight: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color(theme.LegendHighlight)).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")),
		FocusedLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.FocusColor)).
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ErrorColor)),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.DisabledColor)),
		Normal: lipgloss.NewStyle(),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.LegendHighlight)).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")),
	}
}
