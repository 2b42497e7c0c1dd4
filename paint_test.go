package tuikit

import (
	"strings"
	"testing"
)

func paintBuf(root *Node, w, h int, ctx *PaintContext) *ScreenBuffer {
	b := NewScreenBuffer(w, h)
	Paint(b, Layout(root, w, h), ctx)
	return b
}

func bufRows(b *ScreenBuffer) []string {
	lines := strings.Split(b.DebugString(), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

// inBox wraps a widget in a non-stretching container so it lays out at
// its measured size.
func inBox(n *Node) *Node {
	return &Node{Kind: KindBox, Style: NodeStyle{Align: AlignStart}, Children: []*Node{n}}
}

func TestPaintBorderBox(t *testing.T) {
	root := &Node{Kind: KindBox, Style: NodeStyle{
		Width: Cells(5), Height: Cells(3), Border: BorderSingle,
	}}
	b := paintBuf(root, 10, 5, nil)
	rows := bufRows(b)
	want := []string{"┌───┐", "│   │", "└───┘"}
	for i, w := range want {
		if rows[i] != w {
			t.Errorf("row %d = %q, want %q", i, rows[i], w)
		}
	}
	if got := b.GetCell(0, 0); got.Style.Fg == nil || *got.Style.Fg != defaultBorderColor {
		t.Fatalf("border color = %+v, want default gray", got.Style.Fg)
	}
}

func TestPaintTextAlign(t *testing.T) {
	tests := []struct {
		align TextAlign
		want  string
	}{
		{TextLeft, "hi"},
		{TextCenter, "    hi"},
		{TextRight, "        hi"},
	}
	for _, tt := range tests {
		root := &Node{Kind: KindText, Text: "hi", Style: NodeStyle{
			Width: Cells(10), TextAlign: tt.align,
		}}
		rows := bufRows(paintBuf(root, 10, 2, nil))
		if rows[0] != tt.want {
			t.Errorf("align %v row = %q, want %q", tt.align, rows[0], tt.want)
		}
	}
}

func TestPaintEmbeddedANSIText(t *testing.T) {
	root := &Node{Kind: KindText, Text: "a\x1b[31mb\x1b[0mc"}
	b := paintBuf(root, 10, 1, nil)
	if got := strings.TrimRight(b.DebugString(), " "); got != "abc" {
		t.Fatalf("visible text = %q", got)
	}
	red := b.GetCell(1, 0).Style
	if red.Fg == nil || *red.Fg != ansiPalette[1] {
		t.Fatalf("styled cell = %+v", red)
	}
	if b.GetCell(2, 0).Style.Fg != nil {
		t.Fatal("reset should drop the color")
	}
}

func TestPaintInputPlaceholder(t *testing.T) {
	input := &Node{Kind: KindInput, ID: "in", Focusable: true,
		Input: &InputProps{Placeholder: "name"}}

	b := paintBuf(inBox(input), 12, 4, nil)
	cell := b.GetCell(1, 1)
	if cell.Char != 'n' || !cell.Style.Dim {
		t.Fatalf("placeholder cell = %+v", cell)
	}

	// Focused: the cursor block sits on the first column.
	b = paintBuf(inBox(input), 12, 4, &PaintContext{Focused: "in"})
	if got := b.GetCell(1, 1).Char; got != '▌' {
		t.Fatalf("cursor cell = %q", got)
	}
}

func TestPaintInputPassword(t *testing.T) {
	input := &Node{Kind: KindInput, ID: "pw", Focusable: true,
		Style: NodeStyle{Width: Cells(12)},
		Input: &InputProps{Password: true}}
	states := NewElementStates()
	states.SetInput("pw", InputState{Value: "secret", CursorPos: 6})

	b := paintBuf(inBox(input), 14, 4, &PaintContext{States: states})
	if row := bufRows(b)[1]; !strings.Contains(row, "••••••") {
		t.Fatalf("password row = %q", row)
	}
}

func TestPaintInputScrollsToCursor(t *testing.T) {
	input := &Node{Kind: KindInput, ID: "in", Focusable: true,
		Style: NodeStyle{Width: Cells(6)},
		Input: &InputProps{}}
	states := NewElementStates()
	states.SetInput("in", InputState{Value: "abcdefgh", CursorPos: 8})

	// Inner width 4, cursor at column 8: the window shows the tail.
	b := paintBuf(inBox(input), 10, 4, &PaintContext{States: states, Focused: "in"})
	row := bufRows(b)[1]
	if !strings.Contains(row, "fgh") || strings.Contains(row, "a") {
		t.Fatalf("scrolled row = %q", row)
	}
}

func TestPaintButtonStates(t *testing.T) {
	btn := &Node{Kind: KindButton, ID: "ok", Focusable: true, Text: "OK"}

	b := paintBuf(inBox(btn), 10, 4, &PaintContext{Focused: "ok"})
	cell := b.GetCell(1, 1)
	if cell.Char != 'O' || !cell.Style.Inverse {
		t.Fatalf("focused label cell = %+v", cell)
	}

	b = paintBuf(inBox(btn), 10, 4, &PaintContext{Hovered: "ok"})
	cell = b.GetCell(1, 1)
	if !cell.Style.Bold || cell.Style.Inverse {
		t.Fatalf("hovered label cell = %+v", cell)
	}
}

func TestPaintCheckbox(t *testing.T) {
	cb := &Node{Kind: KindCheckbox, ID: "agree", Focusable: true,
		Checkbox: &CheckboxProps{Label: "Agree"}}

	rows := bufRows(paintBuf(inBox(cb), 12, 2, nil))
	if rows[0] != "☐ Agree" {
		t.Fatalf("unchecked row = %q", rows[0])
	}

	states := NewElementStates()
	states.ToggleCheckbox("agree", false)
	rows = bufRows(paintBuf(inBox(cb), 12, 2, &PaintContext{States: states}))
	if rows[0] != "☑ Agree" {
		t.Fatalf("checked row = %q", rows[0])
	}
}

func TestPaintSelectCollapsed(t *testing.T) {
	sel := &Node{Kind: KindSelect, ID: "lang", Focusable: true,
		Select: &SelectProps{Options: []string{"go", "rust"}, Value: "go"}}
	rows := bufRows(paintBuf(inBox(sel), 12, 2, nil))
	if rows[0] != "[go   ▼]" {
		t.Fatalf("collapsed row = %q", rows[0])
	}
}

func TestPaintSelectOverlay(t *testing.T) {
	sel := &Node{Kind: KindSelect, ID: "lang", Focusable: true,
		Select: &SelectProps{Options: []string{"go", "rust"}, Value: "go"}}
	states := NewElementStates()
	st := states.Select("lang")
	st.Open = true
	st.Highlight = 1
	regions := NewMouseRegionManager()
	regions.BeginFrame()

	b := paintBuf(inBox(sel), 12, 5, &PaintContext{States: states, Regions: regions})
	rows := bufRows(b)
	if !strings.Contains(rows[1], "go") || !strings.Contains(rows[2], "rust") {
		t.Fatalf("overlay rows = %q, %q", rows[1], rows[2])
	}
	if !b.GetCell(1, 2).Style.Inverse {
		t.Fatal("highlighted option should paint inverse")
	}
	if got := regions.HitTest(1, 2); got != selectOptionID("lang", 1) {
		t.Fatalf("option region = %q", got)
	}
}

func TestPaintRule(t *testing.T) {
	hr := &Node{Kind: KindRule, Style: NodeStyle{Height: Cells(1)}}
	rows := bufRows(paintBuf(hr, 8, 1, nil))
	if rows[0] != "────────" {
		t.Fatalf("rule row = %q", rows[0])
	}

	dotted := &Node{Kind: KindRule, Rule: &RuleProps{Char: '·'},
		Style: NodeStyle{Height: Cells(1)}}
	rows = bufRows(paintBuf(dotted, 4, 1, nil))
	if rows[0] != "····" {
		t.Fatalf("custom rule row = %q", rows[0])
	}
}

func TestPaintListPrefixes(t *testing.T) {
	ul := &Node{Kind: KindList, Children: []*Node{textNode("a"), textNode("b")}}
	rows := bufRows(paintBuf(ul, 10, 3, nil))
	if rows[0] != "• a" || rows[1] != "• b" {
		t.Fatalf("bullet rows = %q, %q", rows[0], rows[1])
	}

	ol := &Node{Kind: KindList, List: &ListProps{Ordered: true},
		Children: []*Node{textNode("a"), textNode("b")}}
	rows = bufRows(paintBuf(ol, 10, 3, nil))
	if rows[0] != "1. a" || rows[1] != "2. b" {
		t.Fatalf("numbered rows = %q, %q", rows[0], rows[1])
	}
}

func TestPaintOverflowHidden(t *testing.T) {
	root := &Node{Kind: KindBox,
		Style: NodeStyle{Height: Cells(2), Overflow: OverflowHidden},
		Children: []*Node{
			textNode("l1"), textNode("l2"), textNode("l3"), textNode("l4"),
		}}
	rows := bufRows(paintBuf(root, 10, 6, nil))
	if rows[0] != "l1" || rows[1] != "l2" {
		t.Fatalf("visible rows = %q, %q", rows[0], rows[1])
	}
	if rows[2] != "" {
		t.Fatalf("row 2 should clip, got %q", rows[2])
	}
}

func TestPaintScrolledContent(t *testing.T) {
	root := &Node{Kind: KindBox,
		Style: NodeStyle{Width: Cells(6), Height: Cells(4), Overflow: OverflowScroll, ScrollY: 2},
		Children: []*Node{
			textNode("l1"), textNode("l2"), textNode("l3"), textNode("l4"),
			textNode("l5"), textNode("l6"), textNode("l7"), textNode("l8"),
		}}
	b := paintBuf(root, 10, 4, nil)
	rows := bufRows(b)
	if !strings.HasPrefix(rows[0], "l3") {
		t.Fatalf("scrolled row 0 = %q", rows[0])
	}

	// Vertical scrollbar on the last inner column: a two-cell thumb,
	// one row down.
	wantBar := []rune{'│', '█', '█', '│'}
	for y, want := range wantBar {
		if got := b.GetCell(5, y).Char; got != want {
			t.Errorf("scrollbar cell (5,%d) = %q, want %q", y, got, want)
		}
	}
}

func TestPaintBackgroundInheritance(t *testing.T) {
	bg := RGBA{0, 0, 128, 255}
	root := &Node{Kind: KindBox,
		Style:    NodeStyle{Bg: &bg, Width: Cells(6), Height: Cells(2)},
		Children: []*Node{textNode("hi")}}
	b := paintBuf(root, 8, 3, nil)

	// The box fills its own background; the child text inherits it.
	if got := b.GetCell(5, 1).Style.Bg; got == nil || *got != bg {
		t.Fatalf("fill cell bg = %+v", got)
	}
	if got := b.GetCell(0, 0).Style.Bg; got == nil || *got != bg {
		t.Fatalf("text cell bg = %+v", got)
	}
}

func TestPaintFixedChildIgnoresScroll(t *testing.T) {
	fixed := textNode("F")
	fixed.Style.Position = PositionFixed
	fixed.Style.Top = intPtr(0)
	fixed.Style.Left = intPtr(8)
	root := &Node{Kind: KindBox,
		Style: NodeStyle{Width: Cells(10), Height: Cells(3), Overflow: OverflowScroll, ScrollY: 2},
		Children: []*Node{
			textNode("l1"), textNode("l2"), textNode("l3"),
			textNode("l4"), textNode("l5"), fixed,
		}}
	b := paintBuf(root, 10, 3, nil)
	if got := b.GetCell(8, 0).Char; got != 'F' {
		t.Fatalf("fixed cell = %q", got)
	}
}

func intPtr(v int) *int { return &v }

func TestPaintRegistersDragRegion(t *testing.T) {
	panel := &Node{Kind: KindBox, ID: "panel", Movable: true, Resizable: true,
		Style: NodeStyle{Width: Cells(6), Height: Cells(3)}}
	regions := NewMouseRegionManager()
	regions.BeginFrame()

	paintBuf(inBox(panel), 10, 5, &PaintContext{Regions: regions})

	r, ok := regions.Region("panel")
	if !ok {
		t.Fatal("movable panel should register a region")
	}
	if !r.Movable || !r.Resizable {
		t.Fatalf("region flags = %+v", r)
	}
}
