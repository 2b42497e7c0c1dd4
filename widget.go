// Package tuikit provides widget state and text editing behavior.
// All interactive state is owned by the driver and keyed by element ID;
// the layout and paint passes only read it.
package tuikit

import (
	"unicode"
	"unicode/utf8"
)

// InputState is the editing state of a text input.
type InputState struct {
	Value     string
	CursorPos int
}

// SelectState is the state of a select element's dropdown.
type SelectState struct {
	Open      bool
	Highlight int
}

// ElementStates holds per-element interactive state keyed by element ID.
// A zero-value store is ready to use.
type ElementStates struct {
	inputs     map[string]*InputState
	selects    map[string]*SelectState
	checkboxes map[string]bool
}

// NewElementStates creates an empty state store.
func NewElementStates() *ElementStates {
	return &ElementStates{
		inputs:     make(map[string]*InputState),
		selects:    make(map[string]*SelectState),
		checkboxes: make(map[string]bool),
	}
}

// Input returns the editing state for the given element, seeding it from
// the node's declared value on first access.
func (s *ElementStates) Input(id, initial string) *InputState {
	if st, ok := s.inputs[id]; ok {
		return st
	}
	st := &InputState{Value: initial, CursorPos: len(initial)}
	s.inputs[id] = st
	return st
}

// SetInput replaces the editing state for an element.
func (s *ElementStates) SetInput(id string, st InputState) {
	st.CursorPos = clampCursor(st.CursorPos, len(st.Value))
	s.inputs[id] = &st
}

// Select returns the dropdown state for the given element.
func (s *ElementStates) Select(id string) *SelectState {
	if st, ok := s.selects[id]; ok {
		return st
	}
	st := &SelectState{}
	s.selects[id] = st
	return st
}

// Checkbox returns the checked override for an element, falling back to
// the node's declared value when the user has not toggled it.
func (s *ElementStates) Checkbox(id string, declared bool) bool {
	if v, ok := s.checkboxes[id]; ok {
		return v
	}
	return declared
}

// ToggleCheckbox flips the checked state for an element.
func (s *ElementStates) ToggleCheckbox(id string, declared bool) bool {
	next := !s.Checkbox(id, declared)
	s.checkboxes[id] = next
	return next
}

// Drop forgets all state for an element. Called when an element leaves
// the tree so stale state never leaks into a reused ID.
func (s *ElementStates) Drop(id string) {
	delete(s.inputs, id)
	delete(s.selects, id)
	delete(s.checkboxes, id)
}

// Retain drops state for every element whose ID is not in live.
func (s *ElementStates) Retain(live map[string]bool) {
	for id := range s.inputs {
		if !live[id] {
			delete(s.inputs, id)
		}
	}
	for id := range s.selects {
		if !live[id] {
			delete(s.selects, id)
		}
	}
	for id := range s.checkboxes {
		if !live[id] {
			delete(s.checkboxes, id)
		}
	}
}

// InputKeyHandler processes one key against an editing state.
// Return the new state to consume the key, or nil to let it bubble.
type InputKeyHandler func(ev KeyEvent, state InputState) *InputState

// ComposeInputHandlers tries handlers in order until one consumes the key.
func ComposeInputHandlers(handlers ...InputKeyHandler) InputKeyHandler {
	return func(ev KeyEvent, state InputState) *InputState {
		for _, h := range handlers {
			if result := h(ev, state); result != nil {
				return result
			}
		}
		return nil
	}
}

// DefaultInputHandler implements standard single-line editing behavior.
var DefaultInputHandler = ComposeInputHandlers(
	InputNavigationHandler,
	InputDeletionHandler,
	InputPrintableHandler,
)

// InputPrintableHandler inserts printable characters at the cursor.
func InputPrintableHandler(ev KeyEvent, state InputState) *InputState {
	if ev.Char == "" || ev.Ctrl || ev.Alt || ev.Meta {
		return nil
	}
	if !isPrintable(ev.Char) {
		return nil
	}
	return &InputState{
		Value:     state.Value[:state.CursorPos] + ev.Char + state.Value[state.CursorPos:],
		CursorPos: state.CursorPos + len(ev.Char),
	}
}

// InputNavigationHandler handles arrows, home/end and word navigation.
func InputNavigationHandler(ev KeyEvent, state InputState) *InputState {
	switch {
	case ev.Name == KeyLeft && ev.Alt:
		return &InputState{Value: state.Value, CursorPos: prevWord(state.Value, state.CursorPos)}

	case ev.Name == KeyRight && ev.Alt:
		return &InputState{Value: state.Value, CursorPos: nextWord(state.Value, state.CursorPos)}

	case ev.Name == KeyLeft:
		if state.CursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(state.Value[:state.CursorPos])
			return &InputState{Value: state.Value, CursorPos: state.CursorPos - size}
		}
		return &state

	case ev.Name == KeyRight:
		if state.CursorPos < len(state.Value) {
			_, size := utf8.DecodeRuneInString(state.Value[state.CursorPos:])
			return &InputState{Value: state.Value, CursorPos: state.CursorPos + size}
		}
		return &state

	case ev.Name == KeyHome || (ev.Ctrl && ev.Name == "a"):
		return &InputState{Value: state.Value, CursorPos: 0}

	case ev.Name == KeyEnd || (ev.Ctrl && ev.Name == "e"):
		return &InputState{Value: state.Value, CursorPos: len(state.Value)}
	}
	return nil
}

// InputDeletionHandler handles backspace, delete and word/line deletion.
func InputDeletionHandler(ev KeyEvent, state InputState) *InputState {
	switch {
	case ev.Name == KeyBackspace && ev.Alt,
		ev.Ctrl && ev.Name == "w":
		if state.CursorPos == 0 {
			return &state
		}
		start := prevWord(state.Value, state.CursorPos)
		return &InputState{
			Value:     state.Value[:start] + state.Value[state.CursorPos:],
			CursorPos: start,
		}

	case ev.Name == KeyBackspace:
		if state.CursorPos == 0 {
			return &state
		}
		_, size := utf8.DecodeLastRuneInString(state.Value[:state.CursorPos])
		return &InputState{
			Value:     state.Value[:state.CursorPos-size] + state.Value[state.CursorPos:],
			CursorPos: state.CursorPos - size,
		}

	case ev.Name == KeyDelete:
		if state.CursorPos >= len(state.Value) {
			return &state
		}
		_, size := utf8.DecodeRuneInString(state.Value[state.CursorPos:])
		return &InputState{
			Value:     state.Value[:state.CursorPos] + state.Value[state.CursorPos+size:],
			CursorPos: state.CursorPos,
		}

	case ev.Ctrl && ev.Name == "u":
		return &InputState{
			Value:     state.Value[state.CursorPos:],
			CursorPos: 0,
		}

	case ev.Ctrl && ev.Name == "k":
		return &InputState{
			Value:     state.Value[:state.CursorPos],
			CursorPos: state.CursorPos,
		}
	}
	return nil
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r < ' ' {
			return false
		}
	}
	return s != ""
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// prevWord returns the position of the start of the word before pos.
func prevWord(value string, pos int) int {
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(value[:pos])
		if isWordChar(r) {
			break
		}
		pos -= size
	}
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(value[:pos])
		if !isWordChar(r) {
			break
		}
		pos -= size
	}
	return pos
}

// nextWord returns the position just past the end of the word after pos.
func nextWord(value string, pos int) int {
	for pos < len(value) {
		r, size := utf8.DecodeRuneInString(value[pos:])
		if isWordChar(r) {
			break
		}
		pos += size
	}
	for pos < len(value) {
		r, size := utf8.DecodeRuneInString(value[pos:])
		if !isWordChar(r) {
			break
		}
		pos += size
	}
	return pos
}

func clampCursor(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
