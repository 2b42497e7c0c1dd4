// Package tuikit provides one-shot static rendering: build, lay out and
// paint a tree once, emitting styled lines without entering a terminal
// session. Useful for CLI output and tests.
package tuikit

import (
	"io"
	"os"
	"strings"

	"github.com/germtb/gox"
	"golang.org/x/term"
)

// PrintOptions configures the static render surface.
type PrintOptions struct {
	Width  int // 0 detects the terminal, falling back to 80
	Height int // 0 detects the terminal, falling back to 24
}

// Print renders a tree to stdout with ANSI styling.
func Print(node gox.VNode) {
	Fprint(os.Stdout, node, PrintOptions{})
}

// Sprint renders a tree to a string with ANSI styling.
func Sprint(node gox.VNode) string {
	var sb strings.Builder
	Fprint(&sb, node, PrintOptions{})
	return sb.String()
}

// Fprint renders a tree to a writer with ANSI styling. Output is
// trimmed to the content's height and ends with a newline.
func Fprint(w io.Writer, node gox.VNode, opts PrintOptions) {
	width, height := opts.Width, opts.Height
	if width == 0 || height == 0 {
		if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width == 0 {
				width = tw
			}
			if height == 0 {
				height = th
			}
		}
	}
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	root := BuildNode(node)
	_, contentH := Measure(root, width, height)
	contentH = min(contentH, height)
	if contentH <= 0 {
		return
	}

	// Static output keeps the tree's natural height rather than
	// stretching to the viewport.
	if root.Style.Height.Unit == DimAuto {
		root.Style.Height = Cells(contentH)
	}

	layout := Layout(root, width, contentH)
	buf := NewScreenBuffer(width, contentH)
	Paint(buf, layout, nil)

	io.WriteString(w, renderLines(buf))
}

// renderLines serializes the buffer row by row with newlines instead of
// cursor moves, so output flows like ordinary text.
func renderLines(b *ScreenBuffer) string {
	var sb strings.Builder
	// Rows reset before the newline, so the style state is always known
	// here; plain text emits no escape codes at all.
	cur := EmptyStyle
	for y := 0; y < b.Height(); y++ {
		// Trailing blanks on each row stay out of the output.
		end := b.Width()
		for end > 0 {
			c := b.GetCell(end-1, y)
			if c.Char != ' ' || !c.Style.Equal(EmptyStyle) {
				break
			}
			end--
		}
		for x := 0; x < end; x++ {
			c := b.GetCell(x, y)
			if c.Char == 0 {
				continue // continuation of a wide rune
			}
			if !cur.Equal(c.Style) {
				writeStyle(&sb, &cur, c.Style)
				cur = c.Style
			}
			sb.WriteRune(c.Char)
		}
		if !cur.Equal(EmptyStyle) {
			sb.WriteString(Reset)
			cur = EmptyStyle
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
