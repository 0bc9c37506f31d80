// Package edit pairs an EEPROM image as loaded with the copy being edited,
// and tracks the search and cursor state shown alongside them.
//
// Every text-taking operation validates its input first. Malformed or
// out-of-range input discards the request and reports false; only file
// I/O returns an error.
package edit

import (
	"eepromed/internal/buffer"
	"eepromed/internal/logger"
	"eepromed/internal/pattern"
	"eepromed/internal/search"
)

// NoOffset marks an unset cursor.
const NoOffset = -1

type Model struct {
	original *buffer.Image
	edited   *buffer.Image

	matches search.MatchSet
	starts  []int

	selected int
	jumped   int
}

// New takes ownership of original; it is not mutated afterwards.
func New(original *buffer.Image) *Model {
	return &Model{
		original: original,
		edited:   original.Clone(),
		selected: NoOffset,
		jumped:   NoOffset,
	}
}

// Open loads filename as the original image.
func Open(filename string) (*Model, error) {
	img, err := buffer.Load(filename)
	if err != nil {
		logger.Error("load failed", "path", filename, "error", err)
		return nil, err
	}
	logger.Info("loaded image", "path", filename)
	return New(img), nil
}

// Save writes the edited image to filename.
func (m *Model) Save(filename string) error {
	if err := m.edited.Save(filename); err != nil {
		logger.Error("save failed", "path", filename, "error", err)
		return err
	}
	logger.Info("saved image", "path", filename, "changed", len(buffer.Diff(m.original, m.edited)))
	return nil
}

// Reset discards every edit, the last match set and both cursors.
func (m *Model) Reset() {
	m.edited = m.original.Clone()
	m.clearMatches()
	m.selected = NoOffset
	m.jumped = NoOffset
	logger.Debug("reset")
}

// Write parses a hex offset and a hex value and stores the value.
func (m *Model) Write(offsetText, valueText string) bool {
	offset, err := pattern.ParseOffset(offsetText)
	if err != nil {
		logger.Debug("write ignored", "offset", offsetText, "error", err)
		return false
	}
	value, err := pattern.ParseByte(valueText)
	if err != nil {
		logger.Debug("write ignored", "value", valueText, "error", err)
		return false
	}
	return m.Set(offset, value)
}

// Set stores value at offset and selects it.
func (m *Model) Set(offset int, value byte) bool {
	if !m.edited.SetByte(offset, value) {
		return false
	}
	m.selected = offset
	logger.Debug("write", "offset", offset, "value", value)
	return true
}

// JumpTo moves the jump cursor to a hex offset.
func (m *Model) JumpTo(offsetText string) bool {
	offset, err := pattern.ParseOffset(offsetText)
	if err != nil {
		logger.Debug("jump ignored", "offset", offsetText, "error", err)
		return false
	}
	m.jumped = offset
	return true
}

// Search replaces the match set with the matches of the pattern typed in
// tokens. A pattern that does not parse leaves the previous set in place.
func (m *Model) Search(tokens [pattern.MaxLen]string) (search.MatchSet, bool) {
	p, err := pattern.Parse(tokens)
	if err != nil {
		logger.Debug("search ignored", "tokens", tokens, "error", err)
		return m.matches, false
	}
	return m.SearchPattern(p), true
}

func (m *Model) SearchPattern(p pattern.Pattern) search.MatchSet {
	m.matches, m.starts = search.Find(m.edited, p.Bytes())
	logger.Debug("search", "pattern", p.String(), "matches", len(m.starts))
	return m.matches
}

// SearchAndReplace overwrites every occurrence of the find pattern with the
// replace pattern. The returned set covers the matches as found before any
// byte was replaced.
func (m *Model) SearchAndReplace(find, with [pattern.MaxLen]string) (search.MatchSet, bool) {
	fp, err := pattern.Parse(find)
	if err != nil {
		logger.Debug("replace ignored", "find", find, "error", err)
		return m.matches, false
	}
	wp, err := pattern.Parse(with)
	if err != nil {
		logger.Debug("replace ignored", "with", with, "error", err)
		return m.matches, false
	}
	return m.ReplacePattern(fp, wp), true
}

func (m *Model) ReplacePattern(find, with pattern.Pattern) search.MatchSet {
	m.matches, m.starts = search.Replace(m.edited, find, with)
	logger.Debug("replace", "find", find.String(), "with", with.String(), "matches", len(m.starts))
	return m.matches
}

// NextMatch moves the jump cursor to the next match start after it,
// wrapping to the first one.
func (m *Model) NextMatch() bool {
	if len(m.starts) == 0 {
		return false
	}
	for _, s := range m.starts {
		if s > m.jumped {
			m.jumped = s
			return true
		}
	}
	m.jumped = m.starts[0]
	return true
}

func (m *Model) clearMatches() {
	m.matches.Clear()
	m.starts = nil
}

// Original returns a copy of the image as loaded.
func (m *Model) Original() buffer.Image { return *m.original }

// Edited returns a copy of the image being edited.
func (m *Model) Edited() buffer.Image { return *m.edited }

func (m *Model) OriginalByte(offset int) (byte, bool) { return m.original.GetByte(offset) }

func (m *Model) EditedByte(offset int) (byte, bool) { return m.edited.GetByte(offset) }

func (m *Model) Matches() search.MatchSet { return m.matches }

// MatchStarts lists the start offsets of the last search, ascending.
func (m *Model) MatchStarts() []int {
	return append([]int(nil), m.starts...)
}

func (m *Model) Selected() (int, bool) { return m.selected, m.selected != NoOffset }

func (m *Model) Jumped() (int, bool) { return m.jumped, m.jumped != NoOffset }

// Modified reports whether the edited image differs from the original.
func (m *Model) Modified() bool { return !m.original.Equal(m.edited) }

// Changed reports whether the byte at offset differs from the original.
func (m *Model) Changed(offset int) bool {
	a, ok := m.original.GetByte(offset)
	if !ok {
		return false
	}
	b, _ := m.edited.GetByte(offset)
	return a != b
}

// Changes lists the offsets that differ from the original.
func (m *Model) Changes() []int { return buffer.Diff(m.original, m.edited) }
