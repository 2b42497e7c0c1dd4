package tuikit

import "testing"

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(NewFocusRegistry(), NewMouseRegionManager(), NewElementStates())
}

func frame(d *Dispatcher, root *Node) map[string]*Node {
	d.Focus.BeginFrame()
	d.Focus.RegisterTree(root)
	d.Focus.EndFrame()
	return IndexNodes(root)
}

func TestTabMovesFocus(t *testing.T) {
	d := newTestDispatcher()
	root := &Node{Kind: KindBox, Children: []*Node{
		{Kind: KindInput, ID: "a", Focusable: true, Input: &InputProps{}},
		{Kind: KindButton, ID: "b", Focusable: true},
	}}
	nodes := frame(d, root)

	cmds := d.DispatchKey(KeyEvent{Name: KeyTab}, nodes)
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want blur+focus", len(cmds))
	}
	if cmds[0].Kind != CmdBlur || cmds[0].Target != "a" {
		t.Fatalf("cmd 0 = %+v", cmds[0])
	}
	if cmds[1].Kind != CmdFocus || cmds[1].Target != "b" {
		t.Fatalf("cmd 1 = %+v", cmds[1])
	}

	// Shift+tab goes back.
	cmds = d.DispatchKey(KeyEvent{Name: KeyTab, Shift: true}, nodes)
	if cmds[1].Target != "a" {
		t.Fatalf("shift+tab focus = %+v", cmds[1])
	}
}

func TestInputTyping(t *testing.T) {
	d := newTestDispatcher()
	root := &Node{Kind: KindBox, Children: []*Node{
		{Kind: KindInput, ID: "name", Focusable: true, Input: &InputProps{}},
	}}
	nodes := frame(d, root)

	for _, ch := range []string{"h", "i"} {
		cmds := d.DispatchKey(KeyEvent{Char: ch}, nodes)
		if len(cmds) != 1 || cmds[0].Kind != CmdChange {
			t.Fatalf("typing %q produced %+v", ch, cmds)
		}
	}
	if st := d.States.Input("name", ""); st.Value != "hi" || st.CursorPos != 2 {
		t.Fatalf("state = %+v", st)
	}

	cmds := d.DispatchKey(KeyEvent{Name: KeyEnter}, nodes)
	if len(cmds) != 1 || cmds[0].Kind != CmdSubmit || cmds[0].Value != "hi" {
		t.Fatalf("enter produced %+v", cmds)
	}
}

func TestNavigationEmitsNoChange(t *testing.T) {
	d := newTestDispatcher()
	root := &Node{Kind: KindBox, Children: []*Node{
		{Kind: KindInput, ID: "name", Focusable: true, Input: &InputProps{Value: "abc"}},
	}}
	nodes := frame(d, root)

	cmds := d.DispatchKey(KeyEvent{Name: KeyLeft}, nodes)
	if len(cmds) != 0 {
		t.Fatalf("cursor move should not emit change, got %+v", cmds)
	}
	if st := d.States.Input("name", "abc"); st.CursorPos != 2 {
		t.Fatalf("cursor = %d, want 2", st.CursorPos)
	}
}

func TestButtonActivation(t *testing.T) {
	d := newTestDispatcher()
	root := &Node{Kind: KindBox, Children: []*Node{
		{Kind: KindButton, ID: "go", Focusable: true},
	}}
	nodes := frame(d, root)

	for _, name := range []string{KeyEnter, KeySpace} {
		cmds := d.DispatchKey(KeyEvent{Name: name}, nodes)
		if len(cmds) != 1 || cmds[0].Kind != CmdClick || cmds[0].Target != "go" {
			t.Fatalf("%s produced %+v", name, cmds)
		}
	}
}

func TestCheckboxToggleKey(t *testing.T) {
	d := newTestDispatcher()
	root := &Node{Kind: KindBox, Children: []*Node{
		{Kind: KindCheckbox, ID: "agree", Focusable: true, Checkbox: &CheckboxProps{}},
	}}
	nodes := frame(d, root)

	cmds := d.DispatchKey(KeyEvent{Name: KeySpace}, nodes)
	if len(cmds) != 1 || cmds[0].Kind != CmdToggle {
		t.Fatalf("space produced %+v", cmds)
	}
}

func TestSelectKeyboardFlow(t *testing.T) {
	d := newTestDispatcher()
	root := &Node{Kind: KindBox, Children: []*Node{
		{Kind: KindSelect, ID: "lang", Focusable: true,
			Select: &SelectProps{Options: []string{"go", "rust", "zig"}, Value: "go"}},
	}}
	nodes := frame(d, root)

	// Enter opens the dropdown on the selected option.
	d.DispatchKey(KeyEvent{Name: KeyEnter}, nodes)
	st := d.States.Select("lang")
	if !st.Open || st.Highlight != 0 {
		t.Fatalf("state after open = %+v", st)
	}

	// Down twice, clamped at the end.
	d.DispatchKey(KeyEvent{Name: KeyDown}, nodes)
	d.DispatchKey(KeyEvent{Name: KeyDown}, nodes)
	d.DispatchKey(KeyEvent{Name: KeyDown}, nodes)
	if st.Highlight != 2 {
		t.Fatalf("highlight = %d, want 2", st.Highlight)
	}

	cmds := d.DispatchKey(KeyEvent{Name: KeyEnter}, nodes)
	if st.Open {
		t.Fatal("enter should close the dropdown")
	}
	if len(cmds) != 1 || cmds[0].Kind != CmdChange || cmds[0].Value != "zig" {
		t.Fatalf("pick produced %+v", cmds)
	}
}

func TestSelectEscapeCloses(t *testing.T) {
	d := newTestDispatcher()
	root := &Node{Kind: KindBox, Children: []*Node{
		{Kind: KindSelect, ID: "lang", Focusable: true,
			Select: &SelectProps{Options: []string{"a", "b"}}},
	}}
	nodes := frame(d, root)

	d.DispatchKey(KeyEvent{Name: KeyEnter}, nodes)
	cmds := d.DispatchKey(KeyEvent{Name: KeyEscape}, nodes)
	if len(cmds) != 0 {
		t.Fatalf("escape produced %+v", cmds)
	}
	if d.States.Select("lang").Open {
		t.Fatal("escape should close the dropdown")
	}
}

func TestMousePressFocusesAndClicks(t *testing.T) {
	d := newTestDispatcher()
	root := &Node{Kind: KindBox, Children: []*Node{
		{Kind: KindInput, ID: "a", Focusable: true, Input: &InputProps{}},
		{Kind: KindButton, ID: "b", Focusable: true},
	}}
	nodes := frame(d, root)
	d.Regions.BeginFrame()
	d.Regions.Register("a", Rect{X: 0, Y: 0, Width: 10, Height: 3})
	d.Regions.Register("b", Rect{X: 0, Y: 5, Width: 10, Height: 3})

	cmds := d.DispatchMouse(MouseEvent{Action: MousePress, Button: MouseButtonLeft, X: 1, Y: 6}, nodes)
	// Entering b, blur a, focus b.
	var kinds []CommandKind
	for _, c := range cmds {
		kinds = append(kinds, c.Kind)
	}
	if d.Focus.Focused() != "b" {
		t.Fatalf("focus = %q after press, want b (commands %v)", d.Focus.Focused(), kinds)
	}

	cmds = d.DispatchMouse(MouseEvent{Action: MouseRelease, Button: MouseButtonLeft, X: 1, Y: 6}, nodes)
	found := false
	for _, c := range cmds {
		if c.Kind == CmdClick && c.Target == "b" {
			found = true
		}
	}
	if !found {
		t.Fatalf("release produced %+v, want click on b", cmds)
	}
}

func TestMouseScrollCommand(t *testing.T) {
	d := newTestDispatcher()
	root := &Node{Kind: KindBox, ID: "pane", Focusable: true}
	nodes := frame(d, root)
	d.Regions.BeginFrame()
	d.Regions.Register("pane", Rect{X: 0, Y: 0, Width: 20, Height: 10})

	cmds := d.DispatchMouse(MouseEvent{Action: MouseScroll, ScrollDirection: ScrollDown, X: 5, Y: 5}, nodes)
	var scroll *Command
	for i := range cmds {
		if cmds[i].Kind == CmdScroll {
			scroll = &cmds[i]
		}
	}
	if scroll == nil || scroll.Target != "pane" || scroll.DeltaY != 1 {
		t.Fatalf("scroll commands = %+v", cmds)
	}
}

func TestSelectOptionIDs(t *testing.T) {
	id := selectOptionID("lang", 3)
	owner, idx, ok := parseSelectOption(id)
	if !ok || owner != "lang" || idx != 3 {
		t.Fatalf("parse(%q) = %q, %d, %v", id, owner, idx, ok)
	}
	if !isSelectOption(id, "lang") {
		t.Fatal("isSelectOption should match")
	}
	if _, _, ok := parseSelectOption("plain"); ok {
		t.Fatal("plain id should not parse as option")
	}
}

func TestSelectClickPick(t *testing.T) {
	d := newTestDispatcher()
	sel := &Node{Kind: KindSelect, ID: "lang", Focusable: true,
		Select: &SelectProps{Options: []string{"go", "rust"}, Value: "go"}}
	root := &Node{Kind: KindBox, Children: []*Node{sel}}
	nodes := frame(d, root)

	d.Regions.BeginFrame()
	d.Regions.Register("lang", Rect{X: 0, Y: 0, Width: 10, Height: 1})

	// Click the select: it opens.
	d.DispatchMouse(MouseEvent{Action: MousePress, Button: MouseButtonLeft, X: 1, Y: 0}, nodes)
	d.DispatchMouse(MouseEvent{Action: MouseRelease, Button: MouseButtonLeft, X: 1, Y: 0}, nodes)
	if !d.States.Select("lang").Open {
		t.Fatal("click should open the dropdown")
	}

	// The overlay registered option rows; click the second option.
	d.Regions.Register(selectOptionID("lang", 1), Rect{X: 0, Y: 2, Width: 10, Height: 1})
	d.DispatchMouse(MouseEvent{Action: MousePress, Button: MouseButtonLeft, X: 1, Y: 2}, nodes)
	cmds := d.DispatchMouse(MouseEvent{Action: MouseRelease, Button: MouseButtonLeft, X: 1, Y: 2}, nodes)

	var change *Command
	for i := range cmds {
		if cmds[i].Kind == CmdChange {
			change = &cmds[i]
		}
	}
	if change == nil || change.Value != "rust" {
		t.Fatalf("option click produced %+v", cmds)
	}
	if d.States.Select("lang").Open {
		t.Fatal("picking an option should close the dropdown")
	}
}
