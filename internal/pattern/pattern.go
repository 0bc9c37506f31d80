// Package pattern parses the hex text tokens typed into the editor and
// models the 1-4 byte search and replace patterns built from them.
package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"eepromed/internal/buffer"
)

// MaxLen is the number of slots in a pattern.
const MaxLen = 4

// MaxDigits is the most hex digits a single token may carry.
const MaxDigits = 4

var (
	ErrEmpty  = errors.New("empty token")
	ErrSyntax = errors.New("invalid hex token")
	ErrRange  = errors.New("value out of range")
)

// parseHex accepts 1-MaxDigits hex digits, case-insensitive, with an
// optional 0x prefix and surrounding whitespace.
func parseHex(text string) (int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, ErrEmpty
	}
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	if len(s) > MaxDigits {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	return int(v), nil
}

// ParseOffset parses an image offset.
func ParseOffset(text string) (int, error) {
	v, err := parseHex(text)
	if err != nil {
		return 0, err
	}
	if v >= buffer.Size {
		return 0, fmt.Errorf("%w: offset 0x%X", ErrRange, v)
	}
	return v, nil
}

// ParseByte parses a single byte value.
func ParseByte(text string) (byte, error) {
	v, err := parseHex(text)
	if err != nil {
		return 0, err
	}
	if v > 0xFF {
		return 0, fmt.Errorf("%w: value 0x%X", ErrRange, v)
	}
	return byte(v), nil
}

type Slot struct {
	Value byte
	Set   bool
}

// Pattern is an ordered sequence of up to MaxLen optional byte values.
type Pattern [MaxLen]Slot

// Of builds a pattern whose first len(values) slots are set.
func Of(values ...byte) Pattern {
	var p Pattern
	for i, v := range values {
		if i >= MaxLen {
			break
		}
		p[i] = Slot{Value: v, Set: true}
	}
	return p
}

// Parse turns four input tokens into a pattern. An empty token leaves its
// slot unset; any other token must be a valid byte or the whole pattern is
// rejected.
func Parse(tokens [MaxLen]string) (Pattern, error) {
	var p Pattern
	for i, tok := range tokens {
		v, err := ParseByte(tok)
		if errors.Is(err, ErrEmpty) {
			continue
		}
		if err != nil {
			return Pattern{}, fmt.Errorf("slot %d: %w", i+1, err)
		}
		p[i] = Slot{Value: v, Set: true}
	}
	return p, nil
}

// Len is the number of set slots, wherever they sit.
func (p Pattern) Len() int {
	n := 0
	for _, s := range p {
		if s.Set {
			n++
		}
	}
	return n
}

// At returns the value of slot j, or 0 when the slot is unset or j is out
// of range.
func (p Pattern) At(j int) byte {
	if j < 0 || j >= MaxLen || !p[j].Set {
		return 0
	}
	return p[j].Value
}

// Bytes returns the needle: slots 0..Len()-1 in order. With a gap in the
// set slots this reads an unset slot as 0 and skips a set one further
// right; Contiguous reports that case.
func (p Pattern) Bytes() []byte {
	n := p.Len()
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for j := 0; j < n; j++ {
		out[j] = p.At(j)
	}
	return out
}

// Contiguous reports whether the set slots form a prefix.
func (p Pattern) Contiguous() bool {
	gap := false
	for _, s := range p {
		if !s.Set {
			gap = true
		} else if gap {
			return false
		}
	}
	return true
}

func (p Pattern) String() string {
	parts := make([]string, 0, MaxLen)
	for _, s := range p {
		if s.Set {
			parts = append(parts, fmt.Sprintf("%02X", s.Value))
		} else {
			parts = append(parts, "--")
		}
	}
	return strings.Join(parts, " ")
}
