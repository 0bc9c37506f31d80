package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"eepromed/internal/config"
	"eepromed/internal/logger"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// setting is one editable line of the options view.
type setting struct {
	label string
	field func(*config.Config) *string
}

var settings = []setting{
	{"Selected Color", func(c *config.Config) *string { return &c.Theme.SelectedColor }},
	{"Jumped Color", func(c *config.Config) *string { return &c.Theme.JumpedColor }},
	{"Match Color", func(c *config.Config) *string { return &c.Theme.MatchColor }},
	{"Changed Color", func(c *config.Config) *string { return &c.Theme.ChangedColor }},
	{"Offset Color", func(c *config.Config) *string { return &c.Theme.OffsetColor }},
	{"Title Color", func(c *config.Config) *string { return &c.Theme.TitleColor }},
	{"Border Color", func(c *config.Config) *string { return &c.Theme.BorderColor }},
	{"Legend Background", func(c *config.Config) *string { return &c.Theme.LegendBackground }},
	{"Legend Highlight", func(c *config.Config) *string { return &c.Theme.LegendHighlight }},
	{"Focus Color", func(c *config.Config) *string { return &c.Theme.FocusColor }},
	{"Error Color", func(c *config.Config) *string { return &c.Theme.ErrorColor }},
	{"Disabled Color", func(c *config.Config) *string { return &c.Theme.DisabledColor }},
	{"Output File", func(c *config.Config) *string { return &c.Editor.OutputFile }},
}

func (m *Model) openConfig() tea.Cmd {
	m.configInputs = make([]textinput.Model, len(settings))
	for i, s := range settings {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 40
		ti.SetValue(*s.field(m.config))
		m.configInputs[i] = ti
	}
	m.configIndex = 0
	m.view = ViewConfig
	return m.configInputs[0].Focus()
}

func (m *Model) handleConfigKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.tryQuit()
	case msg.Type == tea.KeyEscape:
		m.view = ViewMain
		m.statusMsg = "Options discarded"
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.saveConfig()
		return m, nil
	case msg.Type == tea.KeyUp || msg.Type == tea.KeyShiftTab:
		return m, m.setConfigIndex(m.configIndex - 1)
	case msg.Type == tea.KeyDown || msg.Type == tea.KeyTab:
		return m, m.setConfigIndex(m.configIndex + 1)
	}

	var cmd tea.Cmd
	m.configInputs[m.configIndex], cmd = m.configInputs[m.configIndex].Update(msg)
	return m, cmd
}

func (m *Model) setConfigIndex(i int) tea.Cmd {
	i = (i + len(settings)) % len(settings)
	m.configInputs[m.configIndex].Blur()
	m.configIndex = i
	return m.configInputs[i].Focus()
}

// saveConfig writes the edited options to the config file and applies
// them. On failure the running config is left as it was.
func (m *Model) saveConfig() {
	next := *m.config
	for i, s := range settings {
		*s.field(&next) = strings.TrimSpace(m.configInputs[i].Value())
	}
	if next.Editor.OutputFile == "" {
		next.Editor.OutputFile = config.DefaultOutputFile
	}

	if err := next.Save(m.configPath); err != nil {
		logger.Error("config save failed", "path", m.configPath, "error", err)
		m.setError(fmt.Sprintf("Error saving config: %v", err))
		return
	}

	*m.config = next
	m.styles = config.NewStyles(&m.config.Theme)
	if m.outputFromConfig {
		m.output = m.config.Editor.OutputFile
	}
	m.view = ViewMain
	m.statusMsg = "Options saved"
}

func (m *Model) renderConfig() string {
	var b strings.Builder
	b.WriteString("\nOPTIONS\n")
	b.WriteString("=======\n\n")

	for i, s := range settings {
		prefix := "  "
		label := m.styles.Label
		if i == m.configIndex {
			prefix = "> "
			label = m.styles.FocusedLabel
		}
		b.WriteString(prefix)
		b.WriteString(label.Render(fmt.Sprintf("%-18s", s.label)))
		b.WriteString(": ")
		b.WriteString(m.configInputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\nUp/Down to navigate, type to edit, Enter to save, ESC to cancel\n")
	return b.String()
}

func (m *Model) openSaveAs() tea.Cmd {
	m.saveAsInput.SetValue(m.output)
	m.saveAsInput.CursorEnd()
	m.view = ViewSaveAs
	return m.saveAsInput.Focus()
}

func (m *Model) handleSaveAsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.tryQuit()
	case tea.KeyEscape:
		m.saveAsInput.Blur()
		m.view = ViewMain
		return m, nil
	case tea.KeyEnter:
		m.saveAs(strings.TrimSpace(m.saveAsInput.Value()))
		return m, nil
	}

	var cmd tea.Cmd
	m.saveAsInput, cmd = m.saveAsInput.Update(msg)
	return m, cmd
}

// saveAs writes the edited image to path, which becomes the target of
// later saves. The source image is never a valid target.
func (m *Model) saveAs(path string) {
	if path == "" {
		m.setError("No filename given")
		return
	}
	if m.source != "" && filepath.Clean(path) == filepath.Clean(m.source) {
		m.setError("Refusing to overwrite the source image")
		return
	}
	if err := m.doc.Save(path); err != nil {
		m.setError(fmt.Sprintf("Error saving: %v", err))
		return
	}

	m.saveAsInput.Blur()
	m.output = path
	m.outputFromConfig = false
	m.dirty = false
	m.view = ViewMain
	m.statusMsg = fmt.Sprintf("File saved successfully as %s", path)
}

func (m *Model) renderSaveAs() string {
	var b strings.Builder
	b.WriteString("\nSAVE AS\n")
	b.WriteString("=======\n\n")
	b.WriteString(m.saveAsInput.View())
	b.WriteString("\n\nPress Enter to save, ESC to cancel\n")
	return b.String()
}
