package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eepromed/internal/buffer"
	"eepromed/internal/config"
	"eepromed/internal/edit"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, data ...byte) *Model {
	t.Helper()
	img := new(buffer.Image)
	for i := range img {
		img[i] = 0xFF
	}
	copy(img[:], data)

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Editor.OutputFile = filepath.Join(dir, config.DefaultOutputFile)

	m := NewModel(edit.New(img), cfg, Options{
		Source:     "eeprom.bin",
		ConfigPath: filepath.Join(dir, "eepromed.toml"),
	})
	m.copyText = func(string) error { return nil }
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return m
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, kt tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: kt})
	return cmd
}

func focusField(m *Model, field int) {
	for m.focus != field {
		press(m, tea.KeyTab)
	}
}

func TestTypingGoesToFocusedInput(t *testing.T) {
	m := newTestModel(t)

	typeText(m, "1f")
	assert.Equal(t, "1f", m.inputs[fieldOffset].Value())

	press(m, tea.KeyTab)
	assert.Equal(t, fieldValue, m.focus)
	typeText(m, "AB")
	assert.Equal(t, "AB", m.inputs[fieldValue].Value())
}

func TestNonHexRunesAreNotTyped(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "zx")
	assert.Equal(t, "", m.inputs[fieldOffset].Value())
}

func TestInputsAreLimitedToFourDigits(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "123456")
	assert.Equal(t, "1234", m.inputs[fieldOffset].Value())
}

func TestBackspaceEditsInput(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "12")
	press(m, tea.KeyBackspace)
	assert.Equal(t, "1", m.inputs[fieldOffset].Value())
}

func TestFocusWraps(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyShiftTab)
	assert.Equal(t, numFields-1, m.focus)
	press(m, tea.KeyTab)
	assert.Equal(t, 0, m.focus)
}

func TestWriteRow(t *testing.T) {
	m := newTestModel(t, 0x00, 0x00)

	typeText(m, "1")
	press(m, tea.KeyTab)
	typeText(m, "7e")
	press(m, tea.KeyEnter)

	v, _ := m.doc.EditedByte(1)
	assert.Equal(t, byte(0x7E), v)
	assert.Equal(t, edit.HighlightSelected, m.doc.Highlight(1))
	assert.False(t, m.statusErr)
	assert.Contains(t, m.statusMsg, "Wrote 7E at 0x0001")
	assert.True(t, m.dirty)
}

func TestWriteRowRejectsOutOfRangeOffset(t *testing.T) {
	m := newTestModel(t, 0x00)

	typeText(m, "100")
	press(m, tea.KeyTab)
	typeText(m, "1")
	press(m, tea.KeyEnter)

	assert.False(t, m.doc.Modified())
	assert.True(t, m.statusErr)
	assert.False(t, m.dirty)
}

func TestJumpRow(t *testing.T) {
	m := newTestModel(t)
	focusField(m, fieldJump)
	typeText(m, "20")
	press(m, tea.KeyEnter)

	off, ok := m.doc.Jumped()
	require.True(t, ok)
	assert.Equal(t, 0x20, off)
	assert.Equal(t, edit.HighlightJumped, m.doc.Highlight(0x20))
}

func TestSearchRowAndNextMatch(t *testing.T) {
	m := newTestModel(t, 0xAA, 0xAA, 0xAA)
	focusField(m, fieldSearch)
	typeText(m, "aa")
	press(m, tea.KeyTab)
	typeText(m, "aa")
	press(m, tea.KeyEnter)

	matches := m.doc.Matches()
	assert.Equal(t, []int{0, 1, 2}, matches.Offsets())
	assert.Contains(t, m.statusMsg, "Found 2 match(es)")

	typeText(m, "n")
	off, _ := m.doc.Jumped()
	assert.Equal(t, 0, off)
	typeText(m, "n")
	off, _ = m.doc.Jumped()
	assert.Equal(t, 1, off)
}

func TestSearchRowReportsGap(t *testing.T) {
	m := newTestModel(t, 0x00, 0xAA)
	focusField(m, fieldSearch+1)
	typeText(m, "aa")
	press(m, tea.KeyEnter)

	assert.Contains(t, m.statusMsg, "gap in pattern")
}

func TestSearchRowInvalidPattern(t *testing.T) {
	m := newTestModel(t, 0x01)
	focusField(m, fieldSearch)
	typeText(m, "1ff")
	press(m, tea.KeyEnter)

	assert.True(t, m.statusErr)
	matches := m.doc.Matches()
	assert.Zero(t, matches.Count())
}

func TestNextMatchWithoutSearch(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "n")
	assert.True(t, m.statusErr)
	assert.Equal(t, "No matches", m.statusMsg)
}

func TestReplaceRow(t *testing.T) {
	m := newTestModel(t, 0x01, 0x02, 0x01, 0x02)
	focusField(m, fieldFind)
	typeText(m, "01")
	press(m, tea.KeyTab)
	typeText(m, "02")
	focusField(m, fieldWith)
	typeText(m, "03")
	press(m, tea.KeyTab)
	typeText(m, "04")
	press(m, tea.KeyEnter)

	edited := m.doc.Edited()
	assert.Equal(t, []byte{0x03, 0x04, 0x03, 0x04}, edited[:4])
	assert.Contains(t, m.statusMsg, "Replaced 2 match(es)")
	assert.True(t, m.dirty)
}

func TestClearRow(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "12")
	press(m, tea.KeyTab)
	typeText(m, "34")
	press(m, tea.KeyCtrlU)

	assert.Equal(t, "", m.inputs[fieldOffset].Value())
	assert.Equal(t, "", m.inputs[fieldValue].Value())
}

func TestResetCommand(t *testing.T) {
	m := newTestModel(t, 0x00)
	m.doc.Write("0", "55")
	m.dirty = true

	typeText(m, "r")

	assert.False(t, m.doc.Modified())
	assert.False(t, m.dirty)
	_, ok := m.doc.Selected()
	assert.False(t, ok)
}

func TestSaveCommand(t *testing.T) {
	m := newTestModel(t, 0x00)
	m.doc.Write("0", "55")
	m.dirty = true

	typeText(m, "s")

	require.False(t, m.statusErr, m.statusMsg)
	assert.False(t, m.dirty)
	data, err := os.ReadFile(m.output)
	require.NoError(t, err)
	require.Len(t, data, buffer.Size)
	assert.Equal(t, byte(0x55), data[0])
}

func TestSaveCommandFailure(t *testing.T) {
	m := newTestModel(t)
	m.output = filepath.Join(t.TempDir(), "missing", "out.bin")

	typeText(m, "s")

	assert.True(t, m.statusErr)
	assert.Contains(t, m.statusMsg, "Error saving")
}

func TestCopyCommand(t *testing.T) {
	m := newTestModel(t, 0xDE, 0xAD)
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	typeText(m, "y")

	assert.Len(t, copied, buffer.Size*2)
	assert.True(t, strings.HasPrefix(copied, "dead"))

	m.copyText = func(string) error { return errors.New("no clipboard") }
	typeText(m, "y")
	assert.True(t, m.statusErr)
}

func TestQuitWhenClean(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuitWhenDirtyAsksFirst(t *testing.T) {
	m := newTestModel(t, 0x00)
	m.doc.Write("0", "01")
	m.dirty = true

	typeText(m, "q")
	assert.Equal(t, ViewConfirmQuit, m.view)
	assert.Contains(t, m.View(), "Unsaved changes")

	typeText(m, "n")
	assert.Equal(t, ViewMain, m.view)

	typeText(m, "q")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpView(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "h")
	assert.Equal(t, ViewHelp, m.view)
	assert.Contains(t, m.View(), "HELP")

	press(m, tea.KeyEscape)
	assert.Equal(t, ViewMain, m.view)
}

func TestHelpViewCtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "h")
	require.Equal(t, ViewHelp, m.view)

	cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestOptionsViewSavesConfig(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "o")
	require.Equal(t, ViewConfig, m.view)
	assert.Equal(t, "#00FF00", m.configInputs[0].Value())
	assert.Contains(t, m.View(), "Selected Color")

	press(m, tea.KeyCtrlU)
	typeText(m, "#123456")
	press(m, tea.KeyShiftTab)
	press(m, tea.KeyCtrlU)
	typeText(m, "dump_out.bin")
	press(m, tea.KeyEnter)

	require.False(t, m.statusErr, m.statusMsg)
	assert.Equal(t, ViewMain, m.view)
	assert.Equal(t, "#123456", m.config.Theme.SelectedColor)
	assert.Equal(t, "dump_out.bin", m.output)

	saved, err := config.Load(m.configPath)
	require.NoError(t, err)
	assert.Equal(t, "#123456", saved.Theme.SelectedColor)
	assert.Equal(t, "dump_out.bin", saved.Editor.OutputFile)
}

func TestOptionsViewEscapeDiscards(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "o")
	press(m, tea.KeyCtrlU)
	typeText(m, "#000000")
	press(m, tea.KeyEscape)

	assert.Equal(t, ViewMain, m.view)
	assert.Equal(t, "#00FF00", m.config.Theme.SelectedColor)
	_, err := os.Stat(m.configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestOptionsViewSaveFailure(t *testing.T) {
	m := newTestModel(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	m.configPath = filepath.Join(blocker, "eepromed.toml")

	typeText(m, "o")
	press(m, tea.KeyCtrlU)
	typeText(m, "#000000")
	press(m, tea.KeyEnter)

	assert.True(t, m.statusErr)
	assert.Equal(t, ViewConfig, m.view)
	assert.Equal(t, "#00FF00", m.config.Theme.SelectedColor)
}

func TestSaveAs(t *testing.T) {
	m := newTestModel(t, 0x00)
	m.doc.Write("0", "66")
	m.dirty = true

	typeText(m, "w")
	require.Equal(t, ViewSaveAs, m.view)
	assert.Equal(t, m.output, m.saveAsInput.Value())

	target := filepath.Join(t.TempDir(), "copy.bin")
	press(m, tea.KeyCtrlU)
	typeText(m, target)
	press(m, tea.KeyEnter)

	require.False(t, m.statusErr, m.statusMsg)
	assert.Equal(t, ViewMain, m.view)
	assert.Equal(t, target, m.output)
	assert.False(t, m.dirty)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Len(t, data, buffer.Size)
	assert.Equal(t, byte(0x66), data[0])
}

func TestSaveAsRefusesSource(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "w")
	press(m, tea.KeyCtrlU)
	typeText(m, "eeprom.bin")
	press(m, tea.KeyEnter)

	assert.True(t, m.statusErr)
	assert.Equal(t, ViewSaveAs, m.view)

	press(m, tea.KeyEscape)
	assert.Equal(t, ViewMain, m.view)
}

func TestViewRendersBothGrids(t *testing.T) {
	m := newTestModel(t, 'H', 'i')
	m.doc.Write("0", "41")

	out := m.View()
	assert.Contains(t, out, "Original Data (eeprom.bin)")
	assert.Contains(t, out, "Edited Data (1 changed)")
	assert.Contains(t, out, "0000: ")
	assert.Contains(t, out, "00F0: ")
	assert.Contains(t, out, "Search Hex Value (1-4 Bytes)")
	assert.Contains(t, out, "Save writes")
}

func TestViewListsMatchStarts(t *testing.T) {
	m := newTestModel(t, 0x00, 0x11, 0x00, 0x11)
	m.doc.Search([4]string{"11"})

	assert.Contains(t, m.View(), "Matches at: 0001 0003")
}

func TestRow(t *testing.T) {
	s, e := row(fieldValue)
	assert.Equal(t, []int{fieldOffset, fieldValue + 1}, []int{s, e})
	s, e = row(fieldSearch + 3)
	assert.Equal(t, []int{fieldSearch, fieldFind}, []int{s, e})
	s, e = row(fieldWith + 2)
	assert.Equal(t, []int{fieldFind, numFields}, []int{s, e})
}
