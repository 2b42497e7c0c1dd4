// Package tuikit provides the runtime driver: it owns the terminal, the
// screen buffer, focus, mouse regions and widget state, and runs the
// build -> layout -> paint -> emit pipeline for every frame.
package tuikit

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/germtb/gox"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// AppFunc builds the frame's element tree.
type AppFunc func() gox.VNode

// RuntimeOptions configures a Runtime.
type RuntimeOptions struct {
	Config Config
	// Output defaults to os.Stdout.
	Output io.Writer
	// Input defaults to os.Stdin.
	Input io.Reader
	// Width and Height override terminal size detection; 0 detects.
	Width  int
	Height int
	// OnExit runs once after the terminal is restored.
	OnExit func()
}

type scrollOffset struct{ X, Y int }

// Runtime drives an application. All cross-frame state lives here; no
// package-level registries exist.
type Runtime struct {
	app AppFunc
	cfg Config
	out io.Writer
	in  io.Reader

	buffer  *ScreenBuffer
	focus   *FocusRegistry
	regions *MouseRegionManager
	states  *ElementStates
	disp    *Dispatcher

	width  int
	height int

	nodes  map[string]*Node
	scroll map[string]scrollOffset

	events  chan []Event
	renders chan struct{}
	resizes chan struct{}
	done    chan struct{}

	frameInterval time.Duration
	lastFrame     time.Time
	frameTimer    *time.Timer
	timerArmed    bool

	rendering     bool
	renderPending bool

	exitOnce sync.Once
	restore  func()
	onExit   func()
}

// NewRuntime creates a runtime for an app function.
func NewRuntime(app AppFunc, opts RuntimeOptions) *Runtime {
	cfg := opts.Config
	if cfg.Render.MaxFPS <= 0 {
		cfg = DefaultConfig()
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	in := opts.Input
	if in == nil {
		in = os.Stdin
	}

	width, height := opts.Width, opts.Height
	if width == 0 || height == 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width == 0 {
				width = w
			}
			if height == 0 {
				height = h
			}
		}
	}
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	focus := NewFocusRegistry()
	regions := NewMouseRegionManager()
	states := NewElementStates()

	return &Runtime{
		app:           app,
		cfg:           cfg,
		out:           out,
		in:            in,
		buffer:        NewScreenBuffer(width, height),
		focus:         focus,
		regions:       regions,
		states:        states,
		disp:          NewDispatcher(focus, regions, states),
		width:         width,
		height:        height,
		scroll:        make(map[string]scrollOffset),
		events:        make(chan []Event, 16),
		renders:       make(chan struct{}, 1),
		resizes:       make(chan struct{}, 1),
		done:          make(chan struct{}),
		frameInterval: time.Second / time.Duration(max(1, cfg.Render.MaxFPS)),
		onExit:        opts.OnExit,
	}
}

// Run enters the terminal, renders the first frame and processes events
// until Quit. It blocks until the runtime exits.
func (r *Runtime) Run() error {
	if err := r.enterTerminal(); err != nil {
		return err
	}
	defer r.Quit()

	go r.readInput()
	go r.watchResize()

	r.renderFrame()

	for {
		select {
		case <-r.done:
			return nil
		case batch := <-r.events:
			for _, ev := range batch {
				select {
				case <-r.done:
					return nil
				default:
				}
				r.handleEvent(ev)
			}
		case <-r.renders:
			r.renderFrame()
		case <-r.resizes:
			r.handleResize()
		}
	}
}

// RequestRender schedules a frame. Safe to call from handlers and other
// goroutines; requests coalesce.
func (r *Runtime) RequestRender() {
	select {
	case r.renders <- struct{}{}:
	default:
	}
}

// Focused returns the ID of the focused element.
func (r *Runtime) Focused() string { return r.focus.Focused() }

// Quit restores the terminal and stops the runtime. Idempotent.
func (r *Runtime) Quit() {
	r.exitOnce.Do(func() {
		close(r.done)
		if r.restore != nil {
			r.restore()
		}
		if r.onExit != nil {
			r.onExit()
		}
	})
}

// enterTerminal switches to raw mode, the alternate screen and mouse
// reporting, and builds the restore function that undoes all of it in
// reverse order.
func (r *Runtime) enterTerminal() error {
	var prev *term.State
	if f, ok := r.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		st, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return err
		}
		prev = st
	}

	if r.cfg.Render.AltScreen {
		io.WriteString(r.out, EnterAltScreen)
	}
	io.WriteString(r.out, HideCursor)
	if r.cfg.Input.Mouse {
		io.WriteString(r.out, EnableMouse)
	}
	io.WriteString(r.out, ClearScreen)

	r.restore = func() {
		if r.cfg.Input.Mouse {
			io.WriteString(r.out, DisableMouse)
		}
		io.WriteString(r.out, ShowCursor)
		if r.cfg.Render.AltScreen {
			io.WriteString(r.out, ExitAltScreen)
		}
		io.WriteString(r.out, Reset)
		if prev != nil {
			if f, ok := r.in.(*os.File); ok {
				term.Restore(int(f.Fd()), prev)
			}
		}
	}
	return nil
}

func (r *Runtime) readInput() {
	buf := make([]byte, 256)
	for {
		n, err := r.in.Read(buf)
		if err != nil {
			return
		}
		events := Decode(buf[:n])
		select {
		case r.events <- events:
		case <-r.done:
			return
		}
	}
}

func (r *Runtime) watchResize() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	defer signal.Stop(ch)
	for {
		select {
		case <-ch:
			select {
			case r.resizes <- struct{}{}:
			default:
			}
		case <-r.done:
			return
		}
	}
}

func (r *Runtime) handleResize() {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || (w == r.width && h == r.height) {
		return
	}
	r.width, r.height = w, h
	r.buffer.Resize(w, h)
	io.WriteString(r.out, ClearScreen)
	r.renderFrame()
}

func (r *Runtime) handleEvent(ev Event) {
	switch e := ev.(type) {
	case KeyEvent:
		if e.Ctrl && e.Name == "c" {
			r.Quit()
			return
		}
		// The focused element's keypress handler gets first refusal.
		if id := r.focus.Focused(); id != "" {
			if node := r.nodes[id]; node != nil && node.Handlers.OnKeypress != nil {
				if node.Handlers.OnKeypress(e) {
					r.scheduleRender()
					return
				}
			}
		}
		cmds := r.disp.DispatchKey(e, r.nodes)
		r.resolve(cmds)
	case MouseEvent:
		cmds := r.disp.DispatchMouse(e, r.nodes)
		r.resolve(cmds)
	}
	r.scheduleRender()
}

// resolve invokes handlers for each command against the current tree.
// Commands naming elements that left the tree are dropped.
func (r *Runtime) resolve(cmds []Command) {
	for _, cmd := range cmds {
		node := r.nodes[cmd.Target]
		switch cmd.Kind {
		case CmdFocus:
			if node != nil && node.Handlers.OnFocus != nil {
				node.Handlers.OnFocus()
			}
		case CmdBlur:
			if node != nil && node.Handlers.OnBlur != nil {
				node.Handlers.OnBlur()
			}
		case CmdClick:
			if node != nil && node.Handlers.OnClick != nil {
				node.Handlers.OnClick()
			}
		case CmdChange:
			if node != nil && node.Handlers.OnChange != nil {
				node.Handlers.OnChange(cmd.Value)
			}
		case CmdSubmit:
			if node != nil && node.Handlers.OnSubmit != nil {
				node.Handlers.OnSubmit(cmd.Value)
			}
		case CmdToggle:
			if node != nil {
				checked := r.states.ToggleCheckbox(cmd.Target, node.Checkbox.Checked)
				if node.Handlers.OnChange != nil {
					value := "false"
					if checked {
						value = "true"
					}
					node.Handlers.OnChange(value)
				}
			}
		case CmdScroll:
			off := r.scroll[cmd.Target]
			off.X += cmd.DeltaX
			off.Y += cmd.DeltaY
			r.scroll[cmd.Target] = off
		case CmdQuit:
			r.Quit()
		}
	}
}

// scheduleRender renders now if the frame budget allows, otherwise arms
// a single timer for the remainder. Requests during an active render
// defer to one follow-up frame.
func (r *Runtime) scheduleRender() {
	if r.rendering {
		r.renderPending = true
		return
	}
	elapsed := time.Since(r.lastFrame)
	if elapsed >= r.frameInterval {
		r.renderFrame()
		return
	}
	if r.timerArmed {
		return
	}
	r.timerArmed = true
	r.frameTimer = time.AfterFunc(r.frameInterval-elapsed, func() {
		select {
		case <-r.done:
		default:
			r.RequestRender()
		}
	})
}

func (r *Runtime) renderFrame() {
	select {
	case <-r.done:
		return
	default:
	}

	r.rendering = true
	r.timerArmed = false

	root := BuildNode(r.app())
	r.applyScroll(root)
	r.nodes = IndexNodes(root)

	live := make(map[string]bool, len(r.nodes))
	for id := range r.nodes {
		live[id] = true
	}
	r.states.Retain(live)

	r.focus.BeginFrame()
	r.focus.RegisterTree(root)
	r.focus.EndFrame()

	layout := Layout(root, r.width, r.height)
	r.clampScrollState(layout)

	r.buffer.Clear()
	r.regions.BeginFrame()
	Paint(r.buffer, layout, &PaintContext{
		Focused: r.focus.Focused(),
		Hovered: r.regions.Hovered(),
		Pressed: r.regions.Pressed(),
		States:  r.states,
		Regions: r.regions,
	})

	var frame string
	if r.cfg.Render.FullRedraw {
		frame = r.buffer.Render()
	} else {
		frame = r.buffer.RenderDiff()
	}
	if frame != "" {
		io.WriteString(r.out, frame)
	}

	r.lastFrame = time.Now()
	r.rendering = false
	if r.renderPending {
		r.renderPending = false
		r.RequestRender()
	}
}

// applyScroll copies driver-owned scroll offsets onto the fresh tree so
// layout clamps and paint honors them.
func (r *Runtime) applyScroll(n *Node) {
	if n == nil {
		return
	}
	if n.ID != "" && n.Style.Overflow == OverflowScroll {
		if off, ok := r.scroll[n.ID]; ok {
			n.Style.ScrollX = off.X
			n.Style.ScrollY = off.Y
		}
	}
	for _, c := range n.Children {
		r.applyScroll(c)
	}
}

// clampScrollState writes layout's clamped offsets back to the store so
// repeated wheel-down past the end never accumulates.
func (r *Runtime) clampScrollState(ln *LayoutNode) {
	if ln == nil {
		return
	}
	n := ln.Node
	if n.ID != "" && n.Style.Overflow == OverflowScroll {
		if _, ok := r.scroll[n.ID]; ok {
			r.scroll[n.ID] = scrollOffset{X: ln.ScrollX, Y: ln.ScrollY}
		}
	}
	for _, c := range ln.Children {
		r.clampScrollState(c)
	}
}
