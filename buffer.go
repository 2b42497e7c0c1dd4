// Package tuikit provides the screen buffer: a fixed-size 2D grid of
// cells with clip-aware write primitives and ANSI serialization.
package tuikit

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// BorderStyle selects a border character set.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderSingle
	BorderDouble
	BorderRounded
	BorderBold
	BorderDashed
	BorderDoubleDashed
	BorderASCII
	BorderHidden
)

var borderStyleNames = map[string]BorderStyle{
	"none":          BorderNone,
	"single":        BorderSingle,
	"double":        BorderDouble,
	"rounded":       BorderRounded,
	"bold":          BorderBold,
	"dashed":        BorderDashed,
	"double-dashed": BorderDoubleDashed,
	"ascii":         BorderASCII,
	"hidden":        BorderHidden,
}

// BorderChars holds the characters for drawing one border style.
type BorderChars struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	Junction    rune
}

// BorderCharSets maps each style to its glyphs.
var BorderCharSets = map[BorderStyle]BorderChars{
	BorderSingle:       {'┌', '┐', '└', '┘', '─', '│', '┼'},
	BorderDouble:       {'╔', '╗', '╚', '╝', '═', '║', '╬'},
	BorderRounded:      {'╭', '╮', '╰', '╯', '─', '│', '┼'},
	BorderBold:         {'┏', '┓', '┗', '┛', '━', '┃', '╋'},
	BorderDashed:       {'┌', '┐', '└', '┘', '╌', '╎', '┼'},
	BorderDoubleDashed: {'┌', '┐', '└', '┘', '╍', '╏', '┼'},
	BorderASCII:        {'+', '+', '+', '+', '-', '|', '+'},
	BorderHidden:       {' ', ' ', ' ', ' ', ' ', ' ', ' '},
}

// ScreenBuffer owns width*height cells for the current frame and,
// after the first Clear, the previous frame's cells for diffing.
// Out-of-range writes are no-ops, never errors.
type ScreenBuffer struct {
	width, height int
	cells         []Cell
	prev          []Cell
	hasPrev       bool
}

// NewScreenBuffer creates a buffer filled with empty cells. Negative
// dimensions are normalized to zero.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	width = max(0, width)
	height = max(0, height)
	b := &ScreenBuffer{width: width, height: height}
	b.cells = make([]Cell, width*height)
	for i := range b.cells {
		b.cells[i] = EmptyCell
	}
	return b
}

// Width returns the buffer width.
func (b *ScreenBuffer) Width() int { return b.width }

// Height returns the buffer height.
func (b *ScreenBuffer) Height() int { return b.height }

// Resize discards both frames and reallocates.
func (b *ScreenBuffer) Resize(width, height int) {
	width = max(0, width)
	height = max(0, height)
	b.width = width
	b.height = height
	b.cells = make([]Cell, width*height)
	for i := range b.cells {
		b.cells[i] = EmptyCell
	}
	b.prev = nil
	b.hasPrev = false
}

// Clear snapshots the current cells as the previous frame and resets
// the grid to empty cells.
func (b *ScreenBuffer) Clear() {
	if b.prev == nil || len(b.prev) != len(b.cells) {
		b.prev = make([]Cell, len(b.cells))
	}
	copy(b.prev, b.cells)
	b.hasPrev = true
	for i := range b.cells {
		b.cells[i] = EmptyCell
	}
}

func (b *ScreenBuffer) index(x, y int) int { return y*b.width + x }

func (b *ScreenBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// GetCell returns the cell at (x, y), or EmptyCell when out of bounds.
func (b *ScreenBuffer) GetCell(x, y int) Cell {
	if !b.inBounds(x, y) {
		return EmptyCell
	}
	return b.cells[b.index(x, y)]
}

// Set writes a cell, ignoring out-of-bounds coordinates.
func (b *ScreenBuffer) Set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
}

// WriteChar writes one character with style, honoring the clip.
func (b *ScreenBuffer) WriteChar(x, y int, char rune, style Style, clip *ClipRect) {
	if !InClip(x, y, clip) {
		return
	}
	b.Set(x, y, NewCell(char, style))
}

// WriteCharMerge writes a character, merging style with the existing
// cell and preserving its background if the new style has none.
func (b *ScreenBuffer) WriteCharMerge(x, y int, char rune, style Style, clip *ClipRect) {
	if !InClip(x, y, clip) || !b.inBounds(x, y) {
		return
	}
	existing := b.cells[b.index(x, y)]
	merged := existing.Style.Merge(style)
	if !style.HasBg() && existing.Style.HasBg() {
		merged.Bg = existing.Style.Bg
	}
	b.Set(x, y, NewCell(char, merged))
}

// WriteText writes a string going right, one display unit per grapheme
// cluster, advancing by the cluster's column width. Newlines and
// carriage returns are ignored; text clips at the buffer edge.
// Returns the number of columns advanced.
func (b *ScreenBuffer) WriteText(x, y int, text string, style Style, clip *ClipRect) int {
	if y < 0 || y >= b.height {
		return 0
	}
	col := x
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		if cluster == "\n" || cluster == "\r" || cluster == "\r\n" {
			continue
		}
		w := runewidth.StringWidth(cluster)
		if w < 1 {
			w = 1
		}
		if col >= b.width {
			break
		}
		runes := gr.Runes()
		b.WriteCharMerge(col, y, runes[0], style, clip)
		// Wide units own the following column too. The continuation cell
		// gets rune 0, which serialization skips because the terminal's
		// wide glyph already covers that column.
		for pad := 1; pad < w; pad++ {
			b.WriteCharMerge(col+pad, y, 0, style, clip)
		}
		col += w
	}
	return col - x
}

// FillRect fills a rectangle with a character and style, clipped.
func (b *ScreenBuffer) FillRect(r Rect, char rune, style Style, clip *ClipRect) {
	for dy := 0; dy < r.Height; dy++ {
		for dx := 0; dx < r.Width; dx++ {
			x, y := r.X+dx, r.Y+dy
			if InClip(x, y, clip) {
				b.Set(x, y, NewCell(char, style))
			}
		}
	}
}

// DrawBorder draws a border just inside the rectangle. Degenerate
// rectangles collapse: 1x1 draws the junction glyph, 1xN a vertical
// run, Nx1 a horizontal run.
func (b *ScreenBuffer) DrawBorder(r Rect, style BorderStyle, cellStyle Style, clip *ClipRect) {
	if style == BorderNone || r.Width <= 0 || r.Height <= 0 {
		return
	}
	chars, ok := BorderCharSets[style]
	if !ok {
		chars = BorderCharSets[BorderSingle]
	}

	if r.Width == 1 && r.Height == 1 {
		b.WriteCharMerge(r.X, r.Y, chars.Junction, cellStyle, clip)
		return
	}
	if r.Width == 1 {
		for dy := 0; dy < r.Height; dy++ {
			b.WriteCharMerge(r.X, r.Y+dy, chars.Vertical, cellStyle, clip)
		}
		return
	}
	if r.Height == 1 {
		for dx := 0; dx < r.Width; dx++ {
			b.WriteCharMerge(r.X+dx, r.Y, chars.Horizontal, cellStyle, clip)
		}
		return
	}

	x2 := r.Right() - 1
	y2 := r.Bottom() - 1

	b.WriteCharMerge(r.X, r.Y, chars.TopLeft, cellStyle, clip)
	b.WriteCharMerge(x2, r.Y, chars.TopRight, cellStyle, clip)
	b.WriteCharMerge(r.X, y2, chars.BottomLeft, cellStyle, clip)
	b.WriteCharMerge(x2, y2, chars.BottomRight, cellStyle, clip)
	for dx := 1; dx < r.Width-1; dx++ {
		b.WriteCharMerge(r.X+dx, r.Y, chars.Horizontal, cellStyle, clip)
		b.WriteCharMerge(r.X+dx, y2, chars.Horizontal, cellStyle, clip)
	}
	for dy := 1; dy < r.Height-1; dy++ {
		b.WriteCharMerge(r.X, r.Y+dy, chars.Vertical, cellStyle, clip)
		b.WriteCharMerge(x2, r.Y+dy, chars.Vertical, cellStyle, clip)
	}
}

// Render serializes the whole grid to ANSI: home the cursor, emit every
// row with minimal SGR transitions, finish with a reset.
func (b *ScreenBuffer) Render() string {
	var sb strings.Builder
	sb.Grow(len(b.cells)*4 + b.height*10)

	sb.WriteString(CursorHome)
	var cur *Style
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteString(MoveCursor(0, y))
		}
		for x := 0; x < b.width; x++ {
			c := b.cells[b.index(x, y)]
			if c.Char == 0 {
				continue // covered by the preceding wide glyph
			}
			if cur == nil || !cur.Equal(c.Style) {
				writeStyle(&sb, cur, c.Style)
				s := c.Style
				cur = &s
			}
			sb.WriteRune(c.Char)
		}
	}
	sb.WriteString(Reset)
	return sb.String()
}

// RenderDiff serializes only the cells that changed since the previous
// frame (the snapshot taken by Clear). Every run of changes is preceded
// by a cursor move, and a style reset is emitted whenever any attribute
// flips from on to off, because terminals cannot selectively clear one
// SGR code. Falls back to a full Render when no previous frame exists,
// so the leading cursor-home is never omitted mid-session.
func (b *ScreenBuffer) RenderDiff() string {
	if !b.hasPrev {
		return b.Render()
	}

	var sb strings.Builder
	var cur *Style
	wrote := false

	for y := 0; y < b.height; y++ {
		x := 0
		for x < b.width {
			i := b.index(x, y)
			if b.cells[i].Equal(b.prev[i]) {
				x++
				continue
			}
			// Start of a changed run. A run can never begin on a wide
			// glyph's continuation cell; back up and re-emit the glyph.
			if b.cells[i].Char == 0 && x > 0 {
				x--
			}
			sb.WriteString(MoveCursor(x, y))
			first := true
			for x < b.width {
				i = b.index(x, y)
				c := b.cells[i]
				if !first && c.Equal(b.prev[i]) && c.Char != 0 {
					break
				}
				first = false
				if c.Char != 0 {
					if cur == nil || !cur.Equal(c.Style) {
						writeStyle(&sb, cur, c.Style)
						s := c.Style
						cur = &s
					}
					sb.WriteRune(c.Char)
					wrote = true
				}
				x++
			}
		}
	}

	if !wrote {
		return ""
	}
	sb.WriteString(Reset)
	return sb.String()
}

// DebugString returns the grid's characters only, one row per line.
func (b *ScreenBuffer) DebugString() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < b.width; x++ {
			if c := b.cells[b.index(x, y)]; c.Char != 0 {
				sb.WriteRune(c.Char)
			}
		}
	}
	return sb.String()
}
