// Package tuikit provides the paint pass: a read-only walk over the
// positioned layout tree that writes cells into the screen buffer. Paint
// never mutates nodes or layout; all interactive state arrives through
// the PaintContext.
package tuikit

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// PaintContext carries the driver-owned state paint reads: focus and
// hover identity, widget state, and the region manager to populate.
// A nil States paints declared values; a nil Regions skips registration.
type PaintContext struct {
	Focused string
	Hovered string
	Pressed string
	States  *ElementStates
	Regions *MouseRegionManager
}

var defaultBorderColor = RGBA{R: 128, G: 128, B: 128, A: 255}

func checkboxGlyph(checked bool) string {
	if checked {
		return "☑"
	}
	return "☐"
}

// selectOverlay is a dropdown to paint after the main walk so it sits
// above every sibling regardless of tree position.
type selectOverlay struct {
	node  *Node
	rect  Rect
	state *SelectState
	style Style
}

// Paint renders a layout tree into the buffer.
func Paint(b *ScreenBuffer, root *LayoutNode, ctx *PaintContext) {
	if root == nil {
		return
	}
	if ctx == nil {
		ctx = &PaintContext{}
	}
	var overlays []selectOverlay
	paintNode(b, root, 0, 0, EmptyStyle, nil, ctx, &overlays)
	for _, ov := range overlays {
		paintSelectOverlay(b, ov, ctx)
	}
}

func offsetRect(r Rect, dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// resolveStyle merges a node's own text style over the inherited one.
// Own colors win; unset colors inherit.
func resolveStyle(n *Node, inherited Style) Style {
	s := n.Style.Text
	if s.Fg == nil {
		s.Fg = inherited.Fg
	}
	if s.Bg == nil {
		s.Bg = inherited.Bg
	}
	return s
}

func paintNode(b *ScreenBuffer, ln *LayoutNode, dx, dy int, inherited Style, clip *ClipRect, ctx *PaintContext, overlays *[]selectOverlay) {
	n := ln.Node
	rect := offsetRect(ln.Rect, dx, dy)
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}

	style := resolveStyle(n, inherited)

	// Own background fills the whole border box. Inherited backgrounds
	// were already painted by the ancestor that owns them.
	if n.Style.Bg != nil {
		b.FillRect(rect, ' ', Style{Bg: n.Style.Bg}, clip)
	}

	if bs := borderSize(n); bs > 0 {
		borderStyle := n.Style.Border
		if borderStyle == BorderNone {
			borderStyle = BorderSingle
		}
		lineStyle := style
		switch {
		case n.Style.BorderColor != nil:
			lineStyle.Fg = n.Style.BorderColor
		case lineStyle.Fg != nil:
			// keep the text color
		default:
			fg := defaultBorderColor
			lineStyle.Fg = &fg
		}
		b.DrawBorder(rect, borderStyle, lineStyle, clip)
	}

	if ctx.Regions != nil && n.ID != "" &&
		(n.Focusable || n.Handlers.OnClick != nil || n.Resizable || n.Movable) {
		visible := rect
		if clip != nil {
			visible = rect.Intersect(*clip)
		}
		ctx.Regions.Add(MouseRegion{
			ID:        n.ID,
			Rect:      visible,
			Resizable: n.Resizable,
			Movable:   n.Movable,
		})
	}

	inner := offsetRect(innerRect(ln.Rect, n), dx, dy)

	switch n.Kind {
	case KindText, KindBox:
		if n.Text != "" {
			paintText(b, n, inner, style, clip)
		}
	case KindInput:
		paintInput(b, n, inner, style, clip, ctx)
	case KindButton:
		paintButton(b, n, inner, style, clip, ctx)
	case KindCheckbox:
		paintCheckbox(b, n, inner, style, clip, ctx)
	case KindSelect:
		paintSelect(b, n, rect, inner, style, clip, ctx, overlays)
		return // selects are leaves
	case KindRule:
		ch := '─'
		if n.Rule != nil && n.Rule.Char != 0 {
			ch = n.Rule.Char
		}
		for x := inner.X; x < inner.Right(); x++ {
			b.WriteCharMerge(x, inner.Y, ch, style, clip)
		}
	case KindTable:
		paintTable(b, n, rect, style, clip)
		return
	}

	// Children paint shifted by this node's scroll offsets, clipped to
	// the inner box when overflow hides content.
	childClip := clip
	if n.Style.Overflow == OverflowHidden || n.Style.Overflow == OverflowScroll {
		childClip = IntersectClip(clip, &inner)
	}
	childDx := dx - ln.ScrollX
	childDy := dy - ln.ScrollY

	if n.Kind == KindList {
		paintListPrefixes(b, ln, childDx, childDy, style, childClip)
	}

	for _, child := range ln.Children {
		cdx, cdy := childDx, childDy
		if child.Node.Style.Position == PositionFixed {
			cdx, cdy = 0, 0
		}
		paintNode(b, child, cdx, cdy, style, childClip, ctx, overlays)
	}

	if n.Style.Overflow == OverflowScroll {
		paintScrollbars(b, ln, rect, inner, style, clip)
	}
}

func paintText(b *ScreenBuffer, n *Node, inner Rect, style Style, clip *ClipRect) {
	if inner.Width <= 0 || inner.Height <= 0 {
		return
	}
	lines := textLines(n, inner.Width)
	for i, line := range lines {
		if i >= inner.Height {
			break
		}
		visibleWidth := runewidth.StringWidth(StripANSI(line))
		x := inner.X
		switch n.Style.TextAlign {
		case TextCenter:
			x += max(0, (inner.Width-visibleWidth)/2)
		case TextRight:
			x += max(0, inner.Width-visibleWidth)
		}
		if ContainsANSI(line) {
			for _, seg := range ParseANSILine(line, style) {
				x += b.WriteText(x, inner.Y+i, seg.Text, seg.Style, clip)
			}
		} else {
			b.WriteText(x, inner.Y+i, line, style, clip)
		}
	}
}

func paintInput(b *ScreenBuffer, n *Node, inner Rect, style Style, clip *ClipRect, ctx *PaintContext) {
	if inner.Width <= 0 || inner.Height <= 0 {
		return
	}
	focused := ctx.Focused != "" && ctx.Focused == n.ID

	value := n.Input.Value
	cursor := len(value)
	if ctx.States != nil {
		st := ctx.States.Input(n.ID, n.Input.Value)
		value, cursor = st.Value, st.CursorPos
	}

	// CursorPos is a byte offset; the display column depends on what is
	// actually drawn at each rune.
	display := value
	textStyle := style
	cursorCol := runewidth.StringWidth(value[:min(cursor, len(value))])
	if value == "" && n.Input.Placeholder != "" {
		display = n.Input.Placeholder
		textStyle.Dim = true
		cursorCol = 0
	} else if n.Input.Password {
		display = strings.Repeat("•", utf8.RuneCountInString(value))
		cursorCol = utf8.RuneCountInString(value[:min(cursor, len(value))])
	}

	// Horizontal scroll keeps the cursor inside the visible window.
	offset := 0
	if cursorCol >= inner.Width {
		offset = cursorCol - inner.Width + 1
	}

	visible := cutWidth(display, offset, inner.Width)
	b.WriteText(inner.X, inner.Y, visible, textStyle, clip)

	if focused {
		cx := inner.X + cursorCol - offset
		if cx >= inner.X && cx < inner.Right() {
			b.WriteCharMerge(cx, inner.Y, '▌', style, clip)
		}
	}
}

// cutWidth returns the substring of s starting at display column skip,
// at most width columns wide.
func cutWidth(s string, skip, width int) string {
	var sb strings.Builder
	col := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if col+rw > skip+width {
			break
		}
		if col >= skip {
			sb.WriteRune(r)
		}
		col += rw
	}
	return sb.String()
}

func paintButton(b *ScreenBuffer, n *Node, inner Rect, style Style, clip *ClipRect, ctx *PaintContext) {
	if inner.Width <= 0 || inner.Height <= 0 {
		return
	}
	labelStyle := style
	switch {
	case ctx.Focused != "" && ctx.Focused == n.ID:
		labelStyle.Inverse = true
	case ctx.Hovered != "" && ctx.Hovered == n.ID:
		labelStyle.Bold = true
	}
	label := n.Text
	x := inner.X + max(0, (inner.Width-runewidth.StringWidth(label))/2)
	y := inner.Y + (inner.Height-1)/2
	b.FillRect(inner, ' ', labelStyle, clip)
	b.WriteText(x, y, label, labelStyle, clip)
}

func paintCheckbox(b *ScreenBuffer, n *Node, inner Rect, style Style, clip *ClipRect, ctx *PaintContext) {
	if inner.Width <= 0 || inner.Height <= 0 {
		return
	}
	checked := n.Checkbox.Checked
	if ctx.States != nil {
		checked = ctx.States.Checkbox(n.ID, n.Checkbox.Checked)
	}
	glyphStyle := style
	if ctx.Focused != "" && ctx.Focused == n.ID {
		glyphStyle.Inverse = true
	}
	x := inner.X
	x += b.WriteText(x, inner.Y, checkboxGlyph(checked), glyphStyle, clip)
	x += b.WriteText(x, inner.Y, " ", style, clip)
	b.WriteText(x, inner.Y, n.Checkbox.Label, style, clip)
}

func paintSelect(b *ScreenBuffer, n *Node, rect, inner Rect, style Style, clip *ClipRect, ctx *PaintContext, overlays *[]selectOverlay) {
	if inner.Width <= 0 || inner.Height <= 0 {
		return
	}
	value := n.Select.Value
	var st *SelectState
	if ctx.States != nil {
		st = ctx.States.Select(n.ID)
	}

	boxStyle := style
	if ctx.Focused != "" && ctx.Focused == n.ID {
		boxStyle.Inverse = true
	}

	// Collapsed face: [value ▼]
	label := "[" + padWidth(value, inner.Width-4) + " ▼]"
	b.WriteText(inner.X, inner.Y, label, boxStyle, clip)

	if st != nil && st.Open && len(n.Select.Options) > 0 {
		*overlays = append(*overlays, selectOverlay{node: n, rect: rect, state: st, style: style})
	}
}

func padWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := runewidth.StringWidth(s)
	if w >= width {
		return cutWidth(s, 0, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// paintSelectOverlay draws an open dropdown below its select box,
// unclipped, with the highlighted option inverted. Option rows register
// synthetic mouse regions so clicks resolve to a pick.
func paintSelectOverlay(b *ScreenBuffer, ov selectOverlay, ctx *PaintContext) {
	opts := ov.node.Select.Options
	x := ov.rect.X
	y := ov.rect.Bottom()
	width := max(ov.rect.Width, maxOptionWidth(opts)+2)

	for i, opt := range opts {
		rowStyle := ov.style
		if i == ov.state.Highlight {
			rowStyle.Inverse = true
		}
		row := Rect{X: x, Y: y + i, Width: width, Height: 1}
		b.FillRect(row, ' ', rowStyle, nil)
		b.WriteText(x+1, y+i, opt, rowStyle, nil)
		if ctx.Regions != nil {
			ctx.Regions.Register(selectOptionID(ov.node.ID, i), row)
		}
	}
}

func maxOptionWidth(opts []string) int {
	w := 0
	for _, opt := range opts {
		if ow := runewidth.StringWidth(opt); ow > w {
			w = ow
		}
	}
	return w
}

func paintListPrefixes(b *ScreenBuffer, ln *LayoutNode, dx, dy int, style Style, clip *ClipRect) {
	n := ln.Node
	prefix := listPrefixWidth(n)
	idx := 1
	for _, child := range ln.Children {
		if child.Node.Style.Position != PositionStatic {
			continue
		}
		y := child.Rect.Y + dy
		x := child.Rect.X + dx - prefix
		if n.List != nil && n.List.Ordered {
			b.WriteText(x, y, strconv.Itoa(idx)+". ", style, clip)
		} else {
			b.WriteText(x, y, "• ", style, clip)
		}
		idx++
	}
}

// paintScrollbars draws a vertical thumb on the rightmost inner column
// and a horizontal one on the bottom inner row, when content overflows.
func paintScrollbars(b *ScreenBuffer, ln *LayoutNode, rect, inner Rect, style Style, clip *ClipRect) {
	n := ln.Node

	thumbStyle := style
	if n.Style.ScrollbarColor != nil {
		thumbStyle.Fg = n.Style.ScrollbarColor
	}
	trackStyle := style
	trackStyle.Dim = true
	if n.Style.ScrollbarTrackColor != nil {
		trackStyle.Fg = n.Style.ScrollbarTrackColor
		trackStyle.Dim = false
	}

	if ln.ContentHeight > inner.Height && inner.Height > 0 {
		x := inner.Right() - 1
		thumb := max(1, inner.Height*inner.Height/ln.ContentHeight)
		maxScroll := ln.ContentHeight - inner.Height
		pos := 0
		if maxScroll > 0 {
			pos = ln.ScrollY * (inner.Height - thumb) / maxScroll
		}
		for i := 0; i < inner.Height; i++ {
			ch, st := '│', trackStyle
			if i >= pos && i < pos+thumb {
				ch, st = '█', thumbStyle
			}
			b.WriteCharMerge(x, inner.Y+i, ch, st, clip)
		}
	}

	if ln.ContentWidth > inner.Width && inner.Width > 0 {
		y := inner.Bottom() - 1
		thumb := max(1, inner.Width*inner.Width/ln.ContentWidth)
		maxScroll := ln.ContentWidth - inner.Width
		pos := 0
		if maxScroll > 0 {
			pos = ln.ScrollX * (inner.Width - thumb) / maxScroll
		}
		for i := 0; i < inner.Width; i++ {
			ch, st := '─', trackStyle
			if i >= pos && i < pos+thumb {
				ch, st = '█', thumbStyle
			}
			b.WriteCharMerge(inner.X+i, y, ch, st, clip)
		}
	}
}
