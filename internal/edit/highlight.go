package edit

// Highlight is how an offset should be marked when displayed.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightSelected
	HighlightJumped
	HighlightMatch
)

func (h Highlight) String() string {
	switch h {
	case HighlightSelected:
		return "selected"
	case HighlightJumped:
		return "jumped"
	case HighlightMatch:
		return "match"
	default:
		return "none"
	}
}

// Highlight resolves the marker for offset. The selected cursor wins over
// the jump cursor, which wins over membership in the match set.
func (m *Model) Highlight(offset int) Highlight {
	switch {
	case offset == m.selected && offset != NoOffset:
		return HighlightSelected
	case offset == m.jumped && offset != NoOffset:
		return HighlightJumped
	case m.matches.Has(offset):
		return HighlightMatch
	default:
		return HighlightNone
	}
}
