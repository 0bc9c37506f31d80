package editor

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"eepromed/internal/buffer"
	"eepromed/internal/config"
	"eepromed/internal/edit"
	"eepromed/internal/logger"
	"eepromed/internal/pattern"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type View int

const (
	ViewMain View = iota
	ViewHelp
	ViewConfig
	ViewSaveAs
	ViewConfirmQuit
)

// Input fields, in focus order.
const (
	fieldOffset = iota
	fieldValue
	fieldJump
	fieldSearch
	fieldFind = fieldSearch + pattern.MaxLen
	fieldWith = fieldFind + pattern.MaxLen
	numFields = fieldWith + pattern.MaxLen
)

const bytesPerRow = 16

// Options says where the image came from and where saves go. An empty
// Output follows the configured output file.
type Options struct {
	Source     string
	Output     string
	ConfigPath string
}

type Model struct {
	doc    *edit.Model
	source string
	output string

	// outputFromConfig is set while output tracks cfg.Editor.OutputFile.
	outputFromConfig bool

	view   View
	inputs []textinput.Model
	focus  int
	keys   KeyMap
	dirty  bool
	width  int
	height int

	config     *config.Config
	configPath string
	styles     *config.Styles

	configInputs []textinput.Model
	configIndex  int
	saveAsInput  textinput.Model

	// copyText writes to the system clipboard; replaced in tests.
	copyText func(string) error

	statusMsg string
	statusErr bool
}

func NewModel(doc *edit.Model, cfg *config.Config, opts Options) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		doc:              doc,
		source:           opts.Source,
		output:           opts.Output,
		outputFromConfig: opts.Output == "",
		view:             ViewMain,
		inputs:           make([]textinput.Model, numFields),
		keys:             DefaultKeyMap(),
		config:           cfg,
		configPath:       opts.ConfigPath,
		styles:           config.NewStyles(&cfg.Theme),
		copyText:         clipboard.WriteAll,
		saveAsInput:      textinput.New(),
	}
	if m.outputFromConfig {
		m.output = cfg.Editor.OutputFile
	}
	m.saveAsInput.Prompt = "Filename: "
	m.saveAsInput.Width = 60

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "--"
		ti.CharLimit = pattern.MaxDigits
		ti.Width = pattern.MaxDigits
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()

	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewConfig:
		m.configInputs[m.configIndex], cmd = m.configInputs[m.configIndex].Update(msg)
	case ViewSaveAs:
		m.saveAsInput, cmd = m.saveAsInput.Update(msg)
	default:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	m.statusErr = false

	switch m.view {
	case ViewHelp:
		return m.handleHelpKey(msg)
	case ViewConfig:
		return m.handleConfigKey(msg)
	case ViewSaveAs:
		return m.handleSaveAsKey(msg)
	case ViewConfirmQuit:
		return m.handleConfirmQuitKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.tryQuit()
	case key.Matches(msg, m.keys.NextField):
		return m, m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Apply):
		m.apply()
		return m, nil
	case key.Matches(msg, m.keys.ClearRow):
		m.clearRow()
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		if isHexString(string(msg.Runes)) {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.tryQuit()
		case key.Matches(msg, m.keys.Help):
			m.view = ViewHelp
		case key.Matches(msg, m.keys.Reset):
			m.reset()
		case key.Matches(msg, m.keys.Save):
			m.save()
		case key.Matches(msg, m.keys.SaveAs):
			return m, m.openSaveAs()
		case key.Matches(msg, m.keys.Options):
			return m, m.openConfig()
		case key.Matches(msg, m.keys.NextMatch):
			m.nextMatch()
		case key.Matches(msg, m.keys.Copy):
			m.copyHex()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Save) {
		m.save()
		return m, nil
	}

	// Editing keys (backspace, delete, arrows) go to the focused input.
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	i = (i + numFields) % numFields
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// row returns the half-open range of fields that one Enter applies.
func row(field int) (int, int) {
	switch {
	case field <= fieldValue:
		return fieldOffset, fieldValue + 1
	case field == fieldJump:
		return fieldJump, fieldJump + 1
	case field < fieldFind:
		return fieldSearch, fieldFind
	default:
		return fieldFind, numFields
	}
}

func (m *Model) tokens(first int) [pattern.MaxLen]string {
	var t [pattern.MaxLen]string
	for i := range t {
		t[i] = m.inputs[first+i].Value()
	}
	return t
}

func (m *Model) apply() {
	switch start, _ := row(m.focus); start {
	case fieldOffset:
		offsetText := m.inputs[fieldOffset].Value()
		valueText := m.inputs[fieldValue].Value()
		if !m.doc.Write(offsetText, valueText) {
			m.setError("Write ignored: invalid offset or value")
			return
		}
		m.dirty = true
		off, _ := m.doc.Selected()
		v, _ := m.doc.EditedByte(off)
		m.statusMsg = fmt.Sprintf("Wrote %02X at 0x%04X", v, off)

	case fieldJump:
		if !m.doc.JumpTo(m.inputs[fieldJump].Value()) {
			m.setError("Jump ignored: invalid offset")
			return
		}
		off, _ := m.doc.Jumped()
		m.statusMsg = fmt.Sprintf("Jumped to 0x%04X", off)

	case fieldSearch:
		t := m.tokens(fieldSearch)
		if _, ok := m.doc.Search(t); !ok {
			m.setError("Search ignored: invalid pattern")
			return
		}
		m.statusMsg = m.matchSummary("Found", t)

	case fieldFind:
		find, with := m.tokens(fieldFind), m.tokens(fieldWith)
		if _, ok := m.doc.SearchAndReplace(find, with); !ok {
			m.setError("Replace ignored: invalid pattern")
			return
		}
		if len(m.doc.MatchStarts()) > 0 {
			m.dirty = true
		}
		m.statusMsg = m.matchSummary("Replaced", find)
	}
}

func (m *Model) matchSummary(verb string, t [pattern.MaxLen]string) string {
	msg := fmt.Sprintf("%s %d match(es)", verb, len(m.doc.MatchStarts()))
	if p, err := pattern.Parse(t); err == nil && !p.Contiguous() {
		msg += fmt.Sprintf(" for %s (gap in pattern: first %d slots used)", p, p.Len())
	}
	return msg
}

func (m *Model) clearRow() {
	start, end := row(m.focus)
	for i := start; i < end; i++ {
		m.inputs[i].Reset()
	}
}

func (m *Model) reset() {
	m.doc.Reset()
	m.dirty = false
	m.statusMsg = "Edited data reset to original"
}

func (m *Model) save() {
	if err := m.doc.Save(m.output); err != nil {
		m.setError(fmt.Sprintf("Error saving: %v", err))
		return
	}
	m.dirty = false
	m.statusMsg = fmt.Sprintf("File saved successfully as %s", m.output)
}

func (m *Model) nextMatch() {
	if !m.doc.NextMatch() {
		m.setError("No matches")
		return
	}
	off, _ := m.doc.Jumped()
	m.statusMsg = fmt.Sprintf("Match at 0x%04X", off)
}

func (m *Model) copyHex() {
	img := m.doc.Edited()
	if err := m.copyText(hex.EncodeToString(img.Bytes())); err != nil {
		logger.Warn("clipboard write failed", "error", err)
		m.setError(fmt.Sprintf("Clipboard: %v", err))
		return
	}
	m.statusMsg = "Edited data copied to clipboard as hex"
}

func (m *Model) setError(msg string) {
	m.statusMsg = msg
	m.statusErr = true
}

func (m *Model) tryQuit() (tea.Model, tea.Cmd) {
	if m.dirty {
		m.view = ViewConfirmQuit
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.tryQuit()
	}
	if msg.Type == tea.KeyEscape || key.Matches(msg, m.keys.Help) {
		m.view = ViewMain
	}
	return m, nil
}

func (m *Model) handleConfirmQuitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.view = ViewMain
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderLegend())
	b.WriteString("\n")

	switch m.view {
	case ViewHelp:
		b.WriteString(m.renderHelp())
	case ViewConfig:
		b.WriteString(m.renderConfig())
	case ViewSaveAs:
		b.WriteString(m.renderSaveAs())
	case ViewConfirmQuit:
		b.WriteString(m.renderMainView())
		b.WriteString("\n")
		b.WriteString(m.renderConfirmDialog("Unsaved changes. Quit anyway? (Y/N)"))
	default:
		b.WriteString(m.renderMainView())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(m.styles.Error.Render(m.statusMsg))
		} else {
			b.WriteString(m.styles.Status.Render(m.statusMsg))
		}
	}

	return b.String()
}

func (m *Model) renderLegend() string {
	items := make([]string, 0, len(m.keys.legend()))
	for _, kb := range m.keys.legend() {
		h := kb.Help()
		items = append(items, m.styles.LegendHighlight.Render(h.Key)+m.styles.Legend.Render(" "+h.Desc))
	}
	legend := strings.Join(items, m.styles.Legend.Render(" | "))
	if m.width > 0 {
		return m.styles.Legend.Width(m.width).Render(legend)
	}
	return m.styles.Legend.Render(legend)
}

func (m *Model) renderMainView() string {
	var b strings.Builder

	origTitle := "Original Data"
	if m.source != "" {
		origTitle += " (" + filepath.Base(m.source) + ")"
	}
	editTitle := "Edited Data"
	if n := len(m.doc.Changes()); n > 0 {
		editTitle = fmt.Sprintf("*Edited Data (%d changed)", n)
	}

	left := m.styles.Panel.Render(m.renderGrid(origTitle, m.doc.OriginalByte, false))
	right := m.styles.Panel.Render(m.renderGrid(editTitle, m.doc.EditedByte, true))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")
	b.WriteString(m.renderForm())

	return b.String()
}

// renderGrid draws one image as rows of 16 bytes with an ASCII column.
// Both grids show the same highlights; the edited grid also marks bytes
// that differ from the original.
func (m *Model) renderGrid(title string, byteAt func(int) (byte, bool), edited bool) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	for rowOffset := 0; rowOffset < buffer.Size; rowOffset += bytesPerRow {
		b.WriteString(m.styles.Offset.Render(fmt.Sprintf("%04X: ", rowOffset)))

		var ascii strings.Builder
		for col := 0; col < bytesPerRow; col++ {
			offset := rowOffset + col
			v, _ := byteAt(offset)
			style := m.cellStyle(offset, edited)

			b.WriteString(style.Render(fmt.Sprintf("%02X", v)))
			if col < bytesPerRow-1 {
				b.WriteString(" ")
				if col == 7 {
					b.WriteString(" ")
				}
			}

			ch := "."
			if v >= 32 && v <= 126 {
				ch = string(rune(v))
			}
			ascii.WriteString(style.Render(ch))
		}

		b.WriteString(" | ")
		b.WriteString(ascii.String())
		if rowOffset+bytesPerRow < buffer.Size {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m *Model) cellStyle(offset int, edited bool) lipgloss.Style {
	switch m.doc.Highlight(offset) {
	case edit.HighlightSelected:
		return m.styles.Selected
	case edit.HighlightJumped:
		return m.styles.Jumped
	case edit.HighlightMatch:
		return m.styles.Match
	}
	if edited && m.doc.Changed(offset) {
		return m.styles.Changed
	}
	return m.styles.Normal
}

func (m *Model) renderForm() string {
	var b strings.Builder

	b.WriteString(m.label("Offset (Hex) ", fieldOffset))
	b.WriteString(m.box(fieldOffset))
	b.WriteString(m.label("  Value (Hex) ", fieldOffset))
	b.WriteString(m.box(fieldValue))
	b.WriteString("\n")

	b.WriteString(m.label("Jump to Offset (Hex) ", fieldJump))
	b.WriteString(m.box(fieldJump))
	b.WriteString("\n")

	b.WriteString(m.label("Search Hex Value (1-4 Bytes) ", fieldSearch))
	for i := 0; i < pattern.MaxLen; i++ {
		b.WriteString(m.box(fieldSearch + i))
	}
	b.WriteString("\n")

	b.WriteString(m.label("Search Hex Value (1-4 Bytes) and Replace ", fieldFind))
	for i := 0; i < pattern.MaxLen; i++ {
		b.WriteString(m.box(fieldFind + i))
	}
	b.WriteString(m.label(" with ", fieldFind))
	for i := 0; i < pattern.MaxLen; i++ {
		b.WriteString(m.box(fieldWith + i))
	}
	b.WriteString("\n")

	if starts := m.doc.MatchStarts(); len(starts) > 0 {
		parts := make([]string, 0, len(starts))
		for _, s := range starts {
			parts = append(parts, fmt.Sprintf("%04X", s))
		}
		b.WriteString(m.styles.Match.Render("Matches at: " + strings.Join(parts, " ")))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Disabled.Render("Save writes " + m.output))

	return b.String()
}

// label renders text in the focused style when the focused field belongs
// to the same row as field.
func (m *Model) label(text string, field int) string {
	start, end := row(field)
	if m.focus >= start && m.focus < end {
		return m.styles.FocusedLabel.Render(text)
	}
	return m.styles.Label.Render(text)
}

func (m *Model) box(field int) string {
	return "[" + m.inputs[field].View() + "]"
}

func (m *Model) renderHelp() string {
	return `
HELP - EEPROM Editor
====================

FIELDS
  Tab / Down      Next input field
  Shift+Tab / Up  Previous input field
  0-9 A-F         Type hex digits (up to 4 per field)
  Enter           Apply the focused row:
                    Offset/Value  write one byte
                    Jump          mark an offset
                    Search        highlight a 1-4 byte pattern
                    Replace       replace every match, equal length
  Ctrl+U          Clear the focused row

COMMANDS
  N               Jump to next match
  R               Reset edited data to original
  S / Ctrl+S      Save edited data as a new file
  W               Save edited data under another name
  O               Options: colours and output file
  Y               Copy edited data to clipboard as hex
  H / ?           Help (this screen)
  Q / Ctrl+C      Quit

COLOURS
  green           last written offset
  yellow          jumped-to offset
  orange          search matches
  pink            bytes changed from the original

Empty pattern slots are unset. Unset replacement slots write 00.

Press ESC or H to close this help screen.
`
}

func (m *Model) renderConfirmDialog(message string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.config.Theme.BorderColor)).
		Padding(1, 2).
		Render(message)
}

func isHexString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexChar(s[i]) {
			return false
		}
	}
	return true
}

func isHexChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
