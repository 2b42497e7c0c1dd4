// Package tuikit provides focus ordering and traversal. The registry is
// owned by the driver and rebuilt from the node tree every frame; there
// is no process-global focus state.
package tuikit

import "sort"

type focusEntry struct {
	id       string
	tabIndex int
	order    int // registration order within the frame
}

// FocusRegistry tracks the focusable elements of the current frame and
// which one holds focus. Tab order puts explicit tabIndex > 0 elements
// first in ascending index, ties broken by registration order, followed
// by the tabIndex == 0 elements in registration order.
type FocusRegistry struct {
	entries []focusEntry
	sorted  []focusEntry
	dirty   bool
	focused string
}

// NewFocusRegistry creates an empty registry.
func NewFocusRegistry() *FocusRegistry {
	return &FocusRegistry{}
}

// BeginFrame clears the frame's entries. Focus identity survives across
// frames; entries do not.
func (r *FocusRegistry) BeginFrame() {
	r.entries = r.entries[:0]
	r.sorted = nil
	r.dirty = true
}

// Register adds a focusable element. Call order defines registration
// order, which the driver derives from tree order.
func (r *FocusRegistry) Register(id string, tabIndex int) {
	if id == "" {
		return
	}
	r.entries = append(r.entries, focusEntry{id: id, tabIndex: tabIndex, order: len(r.entries)})
	r.dirty = true
}

// RegisterTree walks a node tree in depth-first order, registering every
// focusable node.
func (r *FocusRegistry) RegisterTree(n *Node) {
	if n == nil {
		return
	}
	if n.Focusable {
		r.Register(n.ID, n.TabIndex)
	}
	for _, child := range n.Children {
		r.RegisterTree(child)
	}
}

// EndFrame resolves the frame: if the focused element is no longer
// present, focus falls back to the first element in tab order, or to
// nothing when the frame has no focusables. Returns the now-focused ID.
func (r *FocusRegistry) EndFrame() string {
	order := r.tabOrder()
	if len(order) == 0 {
		r.focused = ""
		return ""
	}
	if r.focused != "" && r.indexOf(r.focused) >= 0 {
		return r.focused
	}
	r.focused = order[0].id
	return r.focused
}

// Focused returns the ID of the focused element, or "".
func (r *FocusRegistry) Focused() string { return r.focused }

// SetFocus moves focus to the given element if it is registered.
// Returns true when focus changed or was confirmed.
func (r *FocusRegistry) SetFocus(id string) bool {
	if r.indexOf(id) < 0 {
		return false
	}
	r.focused = id
	return true
}

// Blur clears focus.
func (r *FocusRegistry) Blur() { r.focused = "" }

// Next moves focus to the following element in tab order, wrapping at
// the end. With no current focus it picks the first element.
func (r *FocusRegistry) Next() string { return r.step(1) }

// Prev moves focus to the preceding element in tab order, wrapping at
// the start. With no current focus it picks the last element.
func (r *FocusRegistry) Prev() string { return r.step(-1) }

func (r *FocusRegistry) step(dir int) string {
	order := r.tabOrder()
	if len(order) == 0 {
		r.focused = ""
		return ""
	}
	cur := r.indexOf(r.focused)
	var next int
	switch {
	case cur < 0 && dir > 0:
		next = 0
	case cur < 0:
		next = len(order) - 1
	default:
		next = (cur + dir + len(order)) % len(order)
	}
	r.focused = order[next].id
	return r.focused
}

// IDs returns the element IDs in tab order.
func (r *FocusRegistry) IDs() []string {
	order := r.tabOrder()
	ids := make([]string, len(order))
	for i, e := range order {
		ids[i] = e.id
	}
	return ids
}

func (r *FocusRegistry) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range r.tabOrder() {
		if e.id == id {
			return i
		}
	}
	return -1
}

func (r *FocusRegistry) tabOrder() []focusEntry {
	if !r.dirty {
		return r.sorted
	}
	sorted := make([]focusEntry, len(r.entries))
	copy(sorted, r.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		// Explicit tab indexes come first, in ascending order.
		if (a.tabIndex > 0) != (b.tabIndex > 0) {
			return a.tabIndex > 0
		}
		if a.tabIndex > 0 && a.tabIndex != b.tabIndex {
			return a.tabIndex < b.tabIndex
		}
		return a.order < b.order
	})
	r.sorted = sorted
	r.dirty = false
	return r.sorted
}
