// Package search finds 1-4 byte patterns in an EEPROM image and applies
// search-and-replace over it.
package search

import (
	"bytes"

	"eepromed/internal/buffer"
	"eepromed/internal/pattern"
)

// MatchSet flags every offset covered by a match.
type MatchSet [buffer.Size]bool

func (m *MatchSet) Has(offset int) bool {
	return offset >= 0 && offset < buffer.Size && m[offset]
}

func (m *MatchSet) Clear() {
	*m = MatchSet{}
}

// Count is the number of flagged offsets, not the number of matches.
func (m *MatchSet) Count() int {
	n := 0
	for _, hit := range m {
		if hit {
			n++
		}
	}
	return n
}

// Offsets lists the flagged offsets in ascending order.
func (m *MatchSet) Offsets() []int {
	var out []int
	for i, hit := range m {
		if hit {
			out = append(out, i)
		}
	}
	return out
}

func (m *MatchSet) mark(start, n int) {
	for j := 0; j < n; j++ {
		m[start+j] = true
	}
}

// FindStarts returns the ascending start offsets of every occurrence of
// needle, overlapping ones included.
func FindStarts(img *buffer.Image, needle []byte) []int {
	n := len(needle)
	if n == 0 || n > buffer.Size {
		return nil
	}

	var starts []int
	for i := 0; i <= buffer.Size-n; i++ {
		if bytes.Equal(img[i:i+n], needle) {
			starts = append(starts, i)
		}
	}
	return starts
}

// Find returns both the covered offsets and the start offsets of needle.
func Find(img *buffer.Image, needle []byte) (MatchSet, []int) {
	var set MatchSet
	starts := FindStarts(img, needle)
	for _, start := range starts {
		set.mark(start, len(needle))
	}
	return set, starts
}

// FindAll flags every offset covered by an occurrence of needle.
func FindAll(img *buffer.Image, needle []byte) MatchSet {
	set, _ := Find(img, needle)
	return set
}

// Replace overwrites every occurrence of find with the slots of with,
// position by position, unset slots writing 0x00. All occurrences are
// located before the first write; overlapping spans are then written in
// ascending start order, later ones over earlier ones. The returned set
// describes the image as it was before replacement.
func Replace(img *buffer.Image, find, with pattern.Pattern) (MatchSet, []int) {
	needle := find.Bytes()
	set, starts := Find(img, needle)
	for _, start := range starts {
		for j := range needle {
			img[start+j] = with.At(j)
		}
	}
	return set, starts
}
