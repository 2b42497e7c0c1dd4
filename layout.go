// Package tuikit provides the flexbox layout engine for terminal UI.
package tuikit

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Rect is an integer rectangle. Width and height are never negative
// after layout; zero is valid and paints nothing.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of two rectangles, empty if disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())
	return Rect{X: x1, Y: y1, Width: max(0, x2-x1), Height: max(0, y2-y1)}
}

// ClipRect is an optional paint clip. Nil means unclipped.
type ClipRect = Rect

// InClip reports whether a cell position passes the active clip.
func InClip(x, y int, clip *ClipRect) bool {
	if clip == nil {
		return true
	}
	return clip.Contains(x, y)
}

// IntersectClip combines two optional clips.
func IntersectClip(a, b *ClipRect) *ClipRect {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := a.Intersect(*b)
	return &out
}

// LayoutNode is a positioned node. It borrows the Node (owned by the
// frame's tree) and owns its children. Built fresh every layout pass.
type LayoutNode struct {
	Node     *Node
	Rect     Rect
	Children []*LayoutNode

	ScrollX int
	ScrollY int

	// Full unclipped extent of children relative to the inner box,
	// used for scrollbar sizing and scroll clamping.
	ContentWidth  int
	ContentHeight int
}

// InnerRect returns the content box: Rect minus border and padding.
func (ln *LayoutNode) InnerRect() Rect {
	return innerRect(ln.Rect, ln.Node)
}

func innerRect(r Rect, n *Node) Rect {
	b := borderSize(n)
	p := n.Style.Padding
	return Rect{
		X:      r.X + b + p.Left,
		Y:      r.Y + b + p.Top,
		Width:  max(0, r.Width-2*b-p.Horizontal()),
		Height: max(0, r.Height-2*b-p.Vertical()),
	}
}

// borderSize returns 1 when the node paints a border. Inputs and
// buttons always reserve one, for visibility.
func borderSize(n *Node) int {
	if n.Style.Border != BorderNone {
		return 1
	}
	if n.Kind == KindInput || n.Kind == KindButton {
		return 1
	}
	return 0
}

// Layout computes a positioned tree for the viewport. It is a pure
// function of its inputs: same tree and size yield identical Rects.
func Layout(root *Node, viewportW, viewportH int) *LayoutNode {
	viewportW = max(0, viewportW)
	viewportH = max(0, viewportH)
	viewport := Rect{Width: viewportW, Height: viewportH}
	return layoutNode(root, viewport, viewport, true)
}

// Measure returns the intrinsic border-box size of a node. The avail
// pair is the parent's inner size: a width hint for wrapping and the
// base percent dimensions resolve against, per axis. Bottom-up,
// memo-free.
func Measure(n *Node, availWidth, availHeight int) (int, int) {
	return measureNode(n, availWidth, availHeight)
}

// outerMeasure is the measured size plus margins, the amount of main
// axis space the node consumes inside its parent.
func outerMeasure(n *Node, availWidth, availHeight int) (int, int) {
	w, h := measureNode(n, availWidth, availHeight)
	return w + n.Style.Margin.Horizontal(), h + n.Style.Margin.Vertical()
}

func measureNode(n *Node, availWidth, availHeight int) (int, int) {
	var w, h int

	switch n.Kind {
	case KindText:
		w, h = measureText(n, availWidth)
	case KindInput:
		w, h = measureInput(n)
	case KindButton:
		w, h = measureButton(n)
	case KindCheckbox:
		w = runewidth.StringWidth(checkboxGlyph(false)) + 1 + runewidth.StringWidth(n.Checkbox.Label)
		h = 1
	case KindSelect:
		w, h = measureSelect(n)
	case KindRule:
		w, h = max(0, availWidth), 1
	case KindList:
		w, h = measureList(n, availWidth, availHeight)
	case KindTable:
		w, h = measureTable(n)
	default:
		w, h = measureContainer(n, availWidth, availHeight)
	}

	return clampDims(n, w, h, availWidth, availHeight)
}

// clampDims applies explicit width/height and min/max constraints.
// Width constraints resolve against the horizontal base, height
// constraints against the vertical one.
func clampDims(n *Node, w, h, availWidth, availHeight int) (int, int) {
	st := &n.Style
	if ew := st.Width.Resolve(availWidth); ew >= 0 {
		w = ew
	}
	if eh := st.Height.Resolve(availHeight); eh >= 0 {
		h = eh
	}
	if mn := st.MinWidth.Resolve(availWidth); mn >= 0 && w < mn {
		w = mn
	}
	if mx := st.MaxWidth.Resolve(availWidth); mx >= 0 && w > mx {
		w = mx
	}
	if mn := st.MinHeight.Resolve(availHeight); mn >= 0 && h < mn {
		h = mn
	}
	if mx := st.MaxHeight.Resolve(availHeight); mx >= 0 && h > mx {
		h = mx
	}
	return max(0, w), max(0, h)
}

func measureText(n *Node, availWidth int) (int, int) {
	inner := max(0, availWidth-n.Style.Padding.Horizontal()-2*borderSize(n))
	lines := textLines(n, inner)
	maxW := 0
	for _, line := range lines {
		if lw := runewidth.StringWidth(StripANSI(line)); lw > maxW {
			maxW = lw
		}
	}
	return maxW + n.Style.Padding.Horizontal() + 2*borderSize(n),
		len(lines) + n.Style.Padding.Vertical() + 2*borderSize(n)
}

func textLines(n *Node, width int) []string {
	if n.Style.Wrap && width > 0 {
		return WrapText(n.Text, width)
	}
	return strings.Split(n.Text, "\n")
}

func measureInput(n *Node) (int, int) {
	content := n.Input.Value
	if content == "" {
		content = n.Input.Placeholder
	}
	// One extra column keeps the cursor visible at the end of the value.
	return runewidth.StringWidth(content) + 1 + 2, 1 + 2
}

func measureButton(n *Node) (int, int) {
	p := n.Style.Padding
	return runewidth.StringWidth(n.Text) + p.Horizontal() + 2,
		1 + p.Vertical() + 2
}

func measureSelect(n *Node) (int, int) {
	maxOpt := runewidth.StringWidth(n.Select.Value)
	for _, opt := range n.Select.Options {
		if w := runewidth.StringWidth(opt); w > maxOpt {
			maxOpt = w
		}
	}
	// "[value ▼]" - brackets plus the arrow cell and its separator.
	return maxOpt + 4, 1
}

func measureList(n *Node, availWidth, availHeight int) (int, int) {
	prefix := listPrefixWidth(n)
	p := n.Style.Padding
	b := borderSize(n)
	innerH := max(0, availHeight-p.Vertical()-2*b)
	w, h := 0, 0
	for _, child := range n.Children {
		cw, ch := outerMeasure(child, max(0, availWidth-prefix), innerH)
		if cw+prefix > w {
			w = cw + prefix
		}
		h += ch
	}
	return w + p.Horizontal() + 2*b, h + p.Vertical() + 2*b
}

func listPrefixWidth(n *Node) int {
	if n.List != nil && n.List.Ordered {
		return len(strconv.Itoa(len(n.Children))) + 2 // "N. "
	}
	return 2 // "• "
}

func measureContainer(n *Node, availWidth, availHeight int) (int, int) {
	st := &n.Style
	b := borderSize(n)
	innerAvailW := max(0, availWidth-st.Padding.Horizontal()-2*b)
	innerAvailH := max(0, availHeight-st.Padding.Vertical()-2*b)

	contentW, contentH := 0, 0
	i := 0
	for _, child := range n.Children {
		if child.Style.Position != PositionStatic {
			continue
		}
		cw, ch := outerMeasure(child, innerAvailW, innerAvailH)
		if st.Direction.IsRow() {
			contentW += cw
			if i > 0 {
				contentW += st.Gap
			}
			if ch > contentH {
				contentH = ch
			}
		} else {
			contentH += ch
			if i > 0 {
				contentH += st.Gap
			}
			if cw > contentW {
				contentW = cw
			}
		}
		i++
	}

	// Zero children collapse to padding+border only.
	return contentW + st.Padding.Horizontal() + 2*b,
		contentH + st.Padding.Vertical() + 2*b
}

// layoutNode positions a node inside the available box. For the root
// (fill) avail is the viewport and the node is measured against it; for
// everything else the parent has already measured the node and resolved
// its explicit dims against the parent's own inner size, so avail is
// the final outer box. Measuring again here would resolve percent dims
// a second time, against the node's own allotted size. viewport anchors
// position:fixed descendants.
func layoutNode(n *Node, avail Rect, viewport Rect, fill bool) *LayoutNode {
	st := &n.Style

	var w, h int
	if fill {
		w, h = measureNode(n, avail.Width-st.Margin.Horizontal(), avail.Height-st.Margin.Vertical())
		// The root covers the viewport unless explicitly sized.
		if st.Width.Unit == DimAuto {
			w = avail.Width
		}
		if st.Height.Unit == DimAuto {
			h = avail.Height
		}
		w = min(w, max(0, avail.Width-st.Margin.Horizontal()))
	} else {
		w = avail.Width - st.Margin.Horizontal()
		h = avail.Height - st.Margin.Vertical()
	}
	w = max(0, w)
	h = max(0, h)

	rect := Rect{
		X:      avail.X + st.Margin.Left,
		Y:      avail.Y + st.Margin.Top,
		Width:  w,
		Height: h,
	}

	ln := &LayoutNode{Node: n, Rect: rect}
	inner := innerRect(rect, n)

	// List items sit to the right of their bullet or number prefix.
	if n.Kind == KindList {
		prefix := listPrefixWidth(n)
		inner.X += prefix
		inner.Width = max(0, inner.Width-prefix)
	}

	// Tables paint their own cell grid; their children are not free
	// layout boxes.
	if n.Kind == KindTable {
		return ln
	}

	var static, floating []*Node
	for _, child := range n.Children {
		if child.Style.Position == PositionStatic {
			static = append(static, child)
		} else {
			floating = append(floating, child)
		}
	}

	if st.GridColumns > 0 {
		ln.Children = layoutGrid(static, inner, st, viewport)
	} else {
		ln.Children = layoutFlex(static, inner, st, viewport)
	}

	// Absolute children anchor to this node's box, fixed to the viewport.
	for _, child := range floating {
		anchor := rect
		if child.Style.Position == PositionFixed {
			anchor = viewport
		}
		ln.Children = append(ln.Children, layoutAnchored(child, anchor, viewport))
	}

	sortByZIndex(ln.Children)

	ln.ContentWidth, ln.ContentHeight = contentExtent(ln.Children, inner)
	ln.ScrollX = clampScroll(st.ScrollX, ln.ContentWidth, inner.Width)
	ln.ScrollY = clampScroll(st.ScrollY, ln.ContentHeight, inner.Height)

	return ln
}

func clampScroll(v, content, inner int) int {
	return max(0, min(v, max(0, content-inner)))
}

func contentExtent(children []*LayoutNode, inner Rect) (int, int) {
	w, h := 0, 0
	for _, c := range children {
		if c.Node.Style.Position != PositionStatic {
			continue
		}
		if ext := c.Rect.Right() - inner.X; ext > w {
			w = ext
		}
		if ext := c.Rect.Bottom() - inner.Y; ext > h {
			h = ext
		}
	}
	return max(0, w), max(0, h)
}

func sortByZIndex(children []*LayoutNode) {
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Node.Style.ZIndex < children[j].Node.Style.ZIndex
	})
}

// layoutFlex places children along the main axis per justifyContent and
// the cross axis per alignItems. All positions use floor arithmetic.
func layoutFlex(children []*Node, inner Rect, st *NodeStyle, viewport Rect) []*LayoutNode {
	if len(children) == 0 {
		return nil
	}

	// *-reverse reverses the final child order without altering the
	// computed position sequence.
	ordered := children
	if st.Direction.IsReverse() {
		ordered = make([]*Node, len(children))
		for i, c := range children {
			ordered[len(children)-1-i] = c
		}
	}

	isRow := st.Direction.IsRow()
	availMain := inner.Width
	availCross := inner.Height
	if !isRow {
		availMain, availCross = availCross, availMain
	}

	type measured struct {
		node       *Node
		main, crss int
	}
	items := make([]measured, len(ordered))
	for i, c := range ordered {
		ow, oh := outerMeasure(c, inner.Width, inner.Height)
		m := measured{node: c, main: ow, crss: oh}
		if !isRow {
			m.main, m.crss = oh, ow
		}
		items[i] = m
	}

	// flexWrap breaks items into lines once the fixed gap plus the next
	// item no longer fits the main axis; the default keeps a single line
	// that may overflow.
	var lines [][]measured
	if st.FlexWrap {
		var cur []measured
		used := 0
		for _, m := range items {
			need := m.main
			if len(cur) > 0 {
				need += st.Gap
			}
			if len(cur) > 0 && used+need > availMain {
				lines = append(lines, cur)
				cur, used, need = nil, 0, m.main
			}
			cur = append(cur, m)
			used += need
		}
		lines = append(lines, cur)
	} else {
		lines = [][]measured{items}
	}

	out := make([]*LayoutNode, 0, len(items))
	crossBase := 0
	for _, line := range lines {
		sumMain := 0
		lineCross := 0
		for _, m := range line {
			sumMain += m.main
			if m.crss > lineCross {
				lineCross = m.crss
			}
		}
		// A single line spans the whole cross axis; wrapped lines only
		// claim the cross extent of their tallest item.
		if !st.FlexWrap {
			lineCross = availCross
		}

		// justifyContent spacer: space-between/around/evenly override gap
		// with the computed spacer; the others keep the fixed gap.
		gap := st.Gap
		lead := 0
		n := len(line)
		free := availMain - sumMain

		switch st.Justify {
		case JustifyStart:
			// lead 0, fixed gap
		case JustifyCenter:
			lead = max(0, (free-gap*(n-1))/2)
		case JustifyEnd:
			lead = max(0, free-gap*(n-1))
		case JustifySpaceBetween:
			if n > 1 {
				gap = max(0, free/(n-1))
			}
		case JustifySpaceAround:
			gap = max(0, free/n)
			lead = gap / 2
		case JustifySpaceEvenly:
			gap = max(0, free/(n+1))
			lead = gap
		}

		mainPos := lead
		for _, item := range line {
			crossSize := item.crss
			crossPos := crossBase
			explicitCross := item.node.Style.Height.Unit != DimAuto
			if !isRow {
				explicitCross = item.node.Style.Width.Unit != DimAuto
			}
			switch st.Align {
			case AlignStart:
			case AlignCenter:
				crossPos += max(0, (lineCross-crossSize)/2)
			case AlignEnd:
				crossPos += max(0, lineCross-crossSize)
			case AlignStretch:
				if !explicitCross {
					crossSize = lineCross
				}
			}

			var childAvail Rect
			if isRow {
				childAvail = Rect{
					X:      inner.X + mainPos,
					Y:      inner.Y + crossPos,
					Width:  item.main,
					Height: crossSize,
				}
			} else {
				childAvail = Rect{
					X:      inner.X + crossPos,
					Y:      inner.Y + mainPos,
					Width:  crossSize,
					Height: item.main,
				}
			}

			out = append(out, layoutNode(item.node, childAvail, viewport, false))
			mainPos += item.main + gap
		}
		crossBase += lineCross + st.Gap
	}
	return out
}

// layoutGrid implements the minimal grid mode: a fixed column count,
// equal track widths, row height from the tallest cell, row-major order.
func layoutGrid(children []*Node, inner Rect, st *NodeStyle, viewport Rect) []*LayoutNode {
	cols := st.GridColumns
	if cols <= 0 || len(children) == 0 {
		return nil
	}
	track := max(0, (inner.Width-(cols-1)*st.Gap)/cols)

	out := make([]*LayoutNode, 0, len(children))
	y := inner.Y
	for row := 0; row*cols < len(children); row++ {
		start := row * cols
		end := min(start+cols, len(children))

		rowHeight := 0
		for _, c := range children[start:end] {
			_, h := outerMeasure(c, track, inner.Height)
			if h > rowHeight {
				rowHeight = h
			}
		}

		x := inner.X
		for _, c := range children[start:end] {
			out = append(out, layoutNode(c, Rect{X: x, Y: y, Width: track, Height: rowHeight}, viewport, false))
			x += track + st.Gap
		}
		y += rowHeight + st.Gap
	}
	return out
}

// layoutAnchored places an absolute or fixed node against its anchor box
// using top/left/right/bottom offsets.
func layoutAnchored(n *Node, anchor Rect, viewport Rect) *LayoutNode {
	st := &n.Style
	w, h := measureNode(n, anchor.Width, anchor.Height)
	if st.Left != nil && st.Right != nil {
		w = max(0, anchor.Width-*st.Left-*st.Right)
	}
	if st.Top != nil && st.Bottom != nil {
		h = max(0, anchor.Height-*st.Top-*st.Bottom)
	}

	x := anchor.X
	switch {
	case st.Left != nil:
		x = anchor.X + *st.Left
	case st.Right != nil:
		x = anchor.Right() - *st.Right - w
	}
	y := anchor.Y
	switch {
	case st.Top != nil:
		y = anchor.Y + *st.Top
	case st.Bottom != nil:
		y = anchor.Bottom() - *st.Bottom - h
	}

	// layoutNode trusts the box; margins ride outside the measured size.
	return layoutNode(n, Rect{
		X:      x,
		Y:      y,
		Width:  w + st.Margin.Horizontal(),
		Height: h + st.Margin.Vertical(),
	}, viewport, false)
}

// WrapText wraps text to fit a display width, preferring word
// boundaries and falling back to hard wraps. Wide runes never split.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= maxWidth {
			out = append(out, line)
			continue
		}
		remaining := line
		for runewidth.StringWidth(remaining) > maxWidth {
			cut := breakIndex(remaining, maxWidth)
			out = append(out, strings.TrimRight(remaining[:cut], " "))
			remaining = strings.TrimLeft(remaining[cut:], " ")
		}
		if remaining != "" {
			out = append(out, remaining)
		}
	}
	if out == nil {
		out = []string{""}
	}
	return out
}

// breakIndex finds the byte offset to cut a line at for the given
// display width, preferring the last space in the window.
func breakIndex(s string, maxWidth int) int {
	width := 0
	lastSpace := -1
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if width+rw > maxWidth {
			if lastSpace > 0 && lastSpace >= i/2 {
				return lastSpace
			}
			if i == 0 {
				// A single rune wider than the window still advances.
				_, size := nextRune(s)
				return size
			}
			return i
		}
		if r == ' ' {
			lastSpace = i
		}
		width += rw
	}
	return len(s)
}

func nextRune(s string) (rune, int) {
	for i, r := range s {
		_ = i
		return r, len(string(r))
	}
	return 0, 0
}
