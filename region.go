// Package tuikit provides mouse region tracking. Regions are rebuilt
// from layout every frame; press and hover identity survive frames so a
// click can span a re-render between press and release.
package tuikit

// MouseRegion is a clickable rectangle bound to an element. Resizable
// and Movable mark regions whose element opts into drag-resize and
// drag-move; consumers read them off the region during drags.
type MouseRegion struct {
	ID        string
	Rect      Rect
	Resizable bool
	Movable   bool
}

// MouseRegionManager owns the frame's regions and the cross-frame mouse
// state. Later-registered regions win hit tests, matching paint order
// where later paints on top.
type MouseRegionManager struct {
	regions []MouseRegion

	pressed string // element under the active press, "" when none
	hovered string // element under the pointer
}

// NewMouseRegionManager creates an empty manager.
func NewMouseRegionManager() *MouseRegionManager {
	return &MouseRegionManager{}
}

// BeginFrame clears the regions. pressed/hovered persist.
func (m *MouseRegionManager) BeginFrame() {
	m.regions = m.regions[:0]
}

// Register appends a region. Registration order is z-order: the last
// region containing a point wins.
func (m *MouseRegionManager) Register(id string, rect Rect) {
	m.Add(MouseRegion{ID: id, Rect: rect})
}

// Add appends a fully-specified region. Empty IDs and degenerate
// rectangles are dropped.
func (m *MouseRegionManager) Add(r MouseRegion) {
	if r.ID == "" || r.Rect.Width <= 0 || r.Rect.Height <= 0 {
		return
	}
	m.regions = append(m.regions, r)
}

// Region returns the topmost region registered for an element.
func (m *MouseRegionManager) Region(id string) (MouseRegion, bool) {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].ID == id {
			return m.regions[i], true
		}
	}
	return MouseRegion{}, false
}

// HitTest returns the topmost region containing (x, y), or "".
func (m *MouseRegionManager) HitTest(x, y int) string {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].Rect.Contains(x, y) {
			return m.regions[i].ID
		}
	}
	return ""
}

// Pressed returns the element under the active press, or "".
func (m *MouseRegionManager) Pressed() string { return m.pressed }

// Hovered returns the element currently under the pointer, or "".
func (m *MouseRegionManager) Hovered() string { return m.hovered }

// MouseResult describes what a mouse event did to region state.
type MouseResult struct {
	Target     string // element hit by this event, "" for none
	Clicked    string // element that received a full click (press+release)
	Entered    string // element the pointer entered
	Left       string // element the pointer left
	DragTarget string // element the active press started on, during drags
}

// Handle feeds one mouse event through the region state machine.
// A click is a press and a release on the same element; releasing
// elsewhere cancels. Move events produce enter/leave transitions.
func (m *MouseRegionManager) Handle(ev MouseEvent) MouseResult {
	target := m.HitTest(ev.X, ev.Y)
	res := MouseResult{Target: target}

	if target != m.hovered {
		res.Left = m.hovered
		res.Entered = target
		m.hovered = target
	}

	switch ev.Action {
	case MousePress:
		if ev.Button == MouseButtonLeft {
			m.pressed = target
		}
	case MouseRelease:
		if m.pressed != "" && m.pressed == target {
			res.Clicked = target
		}
		m.pressed = ""
	case MouseDrag:
		res.DragTarget = m.pressed
	}

	return res
}

// Reset clears cross-frame mouse state.
func (m *MouseRegionManager) Reset() {
	m.pressed = ""
	m.hovered = ""
}
