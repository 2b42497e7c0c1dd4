// Package tuikit provides the fundamental Cell type representing a terminal "pixel".
// Each Cell holds a character and its styling attributes.
package tuikit

// Style holds text styling attributes.
// Nil colors mean "unset" (the terminal default shows through).
type Style struct {
	Fg            *RGBA
	Bg            *RGBA
	Bold          bool
	Dim           bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Inverse       bool
}

// Cell represents a single "pixel" in the terminal.
type Cell struct {
	Char  rune
	Style Style
}

// EmptyStyle is a Style with no attributes set.
var EmptyStyle = Style{}

// EmptyCell is a Cell with a space character and no styling.
var EmptyCell = Cell{Char: ' ', Style: EmptyStyle}

// NewCell creates a new Cell with the given character and style.
func NewCell(char rune, style Style) Cell {
	return Cell{Char: char, Style: style}
}

// Equal returns true if two Cells are identical.
func (a Cell) Equal(b Cell) bool {
	if a.Char != b.Char {
		return false
	}
	return a.Style.Equal(b.Style)
}

// Equal returns true if two Styles are identical.
func (a Style) Equal(b Style) bool {
	if a.Bold != b.Bold || a.Dim != b.Dim || a.Italic != b.Italic ||
		a.Underline != b.Underline || a.Strikethrough != b.Strikethrough ||
		a.Inverse != b.Inverse {
		return false
	}
	if !rgbaEqual(a.Fg, b.Fg) {
		return false
	}
	return rgbaEqual(a.Bg, b.Bg)
}

func rgbaEqual(a, b *RGBA) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// HasFg returns true if the style has a foreground color set.
func (s Style) HasFg() bool { return s.Fg != nil }

// HasBg returns true if the style has a background color set.
func (s Style) HasBg() bool { return s.Bg != nil }

// Merge creates a new Style by combining two styles.
// The overlay style takes precedence where it sets something.
func (base Style) Merge(overlay Style) Style {
	result := base
	if overlay.Fg != nil {
		result.Fg = overlay.Fg
	}
	if overlay.Bg != nil {
		result.Bg = overlay.Bg
	}
	if overlay.Bold {
		result.Bold = true
	}
	if overlay.Dim {
		result.Dim = true
	}
	if overlay.Italic {
		result.Italic = true
	}
	if overlay.Underline {
		result.Underline = true
	}
	if overlay.Strikethrough {
		result.Strikethrough = true
	}
	if overlay.Inverse {
		result.Inverse = true
	}
	return result
}

// attrDropped reports whether any attribute or color that was on in prev
// is off in next. Terminals cannot clear a single SGR attribute without
// a full reset, so the serializer keys off this.
func attrDropped(prev, next Style) bool {
	if prev.Bold && !next.Bold {
		return true
	}
	if prev.Dim && !next.Dim {
		return true
	}
	if prev.Italic && !next.Italic {
		return true
	}
	if prev.Underline && !next.Underline {
		return true
	}
	if prev.Strikethrough && !next.Strikethrough {
		return true
	}
	if prev.Inverse && !next.Inverse {
		return true
	}
	if prev.Fg != nil && next.Fg == nil {
		return true
	}
	if prev.Bg != nil && next.Bg == nil {
		return true
	}
	return false
}
