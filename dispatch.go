// Package tuikit provides event dispatch. Input events are reduced to
// Command values naming an element and an action; the driver resolves
// each command against the current tree and invokes the node's handler.
// Commands carry no closures, so a command outliving the frame that
// produced it can never call into a stale tree.
package tuikit

import (
	"strconv"
	"strings"
)

// CommandKind identifies what a Command asks the driver to do.
type CommandKind uint8

const (
	CmdNone CommandKind = iota
	CmdFocus
	CmdBlur
	CmdClick
	CmdChange
	CmdSubmit
	CmdToggle
	CmdScroll
	CmdHoverEnter
	CmdHoverLeave
	CmdQuit
)

// Command is one resolved action against a named element.
type Command struct {
	Kind   CommandKind
	Target string
	Value  string
	DeltaX int
	DeltaY int
}

// Dispatcher reduces decoded events to commands. It owns no handlers;
// it reads focus, regions and element state and names what should happen.
type Dispatcher struct {
	Focus   *FocusRegistry
	Regions *MouseRegionManager
	States  *ElementStates
}

// NewDispatcher wires a dispatcher over driver-owned state.
func NewDispatcher(focus *FocusRegistry, regions *MouseRegionManager, states *ElementStates) *Dispatcher {
	return &Dispatcher{Focus: focus, Regions: regions, States: states}
}

// IndexNodes builds an ID lookup over a node tree.
func IndexNodes(root *Node) map[string]*Node {
	index := make(map[string]*Node)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.ID != "" {
			index[n.ID] = n
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return index
}

// DispatchKey reduces a key event to commands for the focused element.
// The driver gives the element's own OnKeypress handler first refusal
// before calling this.
func (d *Dispatcher) DispatchKey(ev KeyEvent, nodes map[string]*Node) []Command {
	var cmds []Command
	focused := d.Focus.Focused()
	node := nodes[focused]

	// An open select captures navigation keys before anything else.
	if node != nil && node.Kind == KindSelect {
		if st := d.States.Select(focused); st.Open {
			if c, handled := d.openSelectKey(ev, focused, node, st); handled {
				if c.Kind != CmdNone {
					cmds = append(cmds, c)
				}
				return cmds
			}
		}
	}

	// Tab traversal.
	if ev.Name == KeyTab {
		prev := focused
		var next string
		if ev.Shift {
			next = d.Focus.Prev()
		} else {
			next = d.Focus.Next()
		}
		if next != prev {
			if prev != "" {
				cmds = append(cmds, Command{Kind: CmdBlur, Target: prev})
			}
			if next != "" {
				cmds = append(cmds, Command{Kind: CmdFocus, Target: next})
			}
		}
		return cmds
	}

	if node == nil {
		return cmds
	}

	switch node.Kind {
	case KindInput:
		return d.inputKey(ev, focused, node)

	case KindButton:
		if ev.Name == KeyEnter || ev.Name == KeySpace {
			return []Command{{Kind: CmdClick, Target: focused}}
		}

	case KindCheckbox:
		if ev.Name == KeyEnter || ev.Name == KeySpace {
			return []Command{{Kind: CmdToggle, Target: focused}}
		}

	case KindSelect:
		if ev.Name == KeyEnter || ev.Name == KeySpace ||
			ev.Name == KeyDown || ev.Name == KeyUp {
			st := d.States.Select(focused)
			st.Open = true
			st.Highlight = selectedIndex(node.Select)
			return cmds
		}
	}

	return cmds
}

func (d *Dispatcher) inputKey(ev KeyEvent, id string, node *Node) []Command {
	st := d.States.Input(id, node.Input.Value)
	if ev.Name == KeyEnter {
		return []Command{{Kind: CmdSubmit, Target: id, Value: st.Value}}
	}
	next := DefaultInputHandler(ev, *st)
	if next == nil {
		return nil
	}
	changed := next.Value != st.Value
	d.States.SetInput(id, *next)
	if changed {
		return []Command{{Kind: CmdChange, Target: id, Value: next.Value}}
	}
	return nil
}

// openSelectKey handles keys while a select dropdown is open. The bool
// reports whether the key was captured.
func (d *Dispatcher) openSelectKey(ev KeyEvent, id string, node *Node, st *SelectState) (Command, bool) {
	opts := node.Select.Options
	switch ev.Name {
	case KeyUp:
		if st.Highlight > 0 {
			st.Highlight--
		}
		return Command{}, true
	case KeyDown:
		if st.Highlight < len(opts)-1 {
			st.Highlight++
		}
		return Command{}, true
	case KeyEnter, KeySpace:
		st.Open = false
		if st.Highlight >= 0 && st.Highlight < len(opts) {
			return Command{Kind: CmdChange, Target: id, Value: opts[st.Highlight]}, true
		}
		return Command{}, true
	case KeyEscape:
		st.Open = false
		return Command{}, true
	}
	return Command{}, false
}

// DispatchMouse reduces a mouse event to commands: focus-on-press for
// focusable targets, clicks, toggles, select option picks, hover
// transitions, and wheel scrolling.
func (d *Dispatcher) DispatchMouse(ev MouseEvent, nodes map[string]*Node) []Command {
	res := d.Regions.Handle(ev)
	var cmds []Command

	if res.Left != "" {
		cmds = append(cmds, Command{Kind: CmdHoverLeave, Target: res.Left})
	}
	if res.Entered != "" {
		cmds = append(cmds, Command{Kind: CmdHoverEnter, Target: res.Entered})
	}

	if ev.Action == MouseScroll && res.Target != "" {
		delta := 1
		if ev.ScrollDirection == ScrollUp {
			delta = -1
		}
		cmds = append(cmds, Command{Kind: CmdScroll, Target: res.Target, DeltaY: delta})
		return cmds
	}

	if ev.Action == MousePress && ev.Button == MouseButtonLeft {
		target := nodes[res.Target]
		prev := d.Focus.Focused()
		if target != nil && target.Focusable && res.Target != prev {
			if d.Focus.SetFocus(res.Target) {
				if prev != "" {
					cmds = append(cmds, Command{Kind: CmdBlur, Target: prev})
				}
				cmds = append(cmds, Command{Kind: CmdFocus, Target: res.Target})
			}
		}
		// Pressing outside an open dropdown closes it.
		if prev != "" {
			if pn := nodes[prev]; pn != nil && pn.Kind == KindSelect {
				if st := d.States.Select(prev); st.Open && res.Target != prev &&
					!isSelectOption(res.Target, prev) {
					st.Open = false
				}
			}
		}
	}

	if res.Clicked != "" {
		cmds = append(cmds, d.clickCommands(res.Clicked, nodes)...)
	}

	return cmds
}

func (d *Dispatcher) clickCommands(id string, nodes map[string]*Node) []Command {
	if owner, idx, ok := parseSelectOption(id); ok {
		if node := nodes[owner]; node != nil && node.Kind == KindSelect {
			st := d.States.Select(owner)
			st.Open = false
			if idx >= 0 && idx < len(node.Select.Options) {
				return []Command{{Kind: CmdChange, Target: owner, Value: node.Select.Options[idx]}}
			}
		}
		return nil
	}

	node := nodes[id]
	if node == nil {
		return []Command{{Kind: CmdClick, Target: id}}
	}
	switch node.Kind {
	case KindCheckbox:
		return []Command{{Kind: CmdToggle, Target: id}}
	case KindSelect:
		st := d.States.Select(id)
		st.Open = !st.Open
		if st.Open {
			st.Highlight = selectedIndex(node.Select)
		}
		return nil
	default:
		return []Command{{Kind: CmdClick, Target: id}}
	}
}

// Open dropdown options are registered as synthetic regions derived from
// the owning select's ID; the separator byte cannot occur in user IDs.
const selectOptionSep = "\x00opt:"

func selectOptionID(owner string, index int) string {
	return owner + selectOptionSep + strconv.Itoa(index)
}

func isSelectOption(id, owner string) bool {
	return strings.HasPrefix(id, owner+selectOptionSep)
}

func parseSelectOption(id string) (owner string, index int, ok bool) {
	i := strings.Index(id, selectOptionSep)
	if i < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(id[i+len(selectOptionSep):])
	if err != nil {
		return "", 0, false
	}
	return id[:i], n, true
}

func selectedIndex(p *SelectProps) int {
	for i, opt := range p.Options {
		if opt == p.Value {
			return i
		}
	}
	return 0
}
