package tuikit

import "testing"

func edit(value string, cursor int) InputState {
	return InputState{Value: value, CursorPos: cursor}
}

func TestPrintableInsertion(t *testing.T) {
	tests := []struct {
		name  string
		ev    KeyEvent
		state InputState
		want  *InputState
	}{
		{"append", KeyEvent{Char: "x"}, edit("ab", 2), &InputState{Value: "abx", CursorPos: 3}},
		{"insert middle", KeyEvent{Char: "x"}, edit("ab", 1), &InputState{Value: "axb", CursorPos: 2}},
		{"space key", KeyEvent{Name: KeySpace, Char: " "}, edit("ab", 2), &InputState{Value: "ab ", CursorPos: 3}},
		{"ctrl not printable", KeyEvent{Char: "a", Ctrl: true}, edit("", 0), nil},
		{"named key ignored", KeyEvent{Name: KeyUp}, edit("ab", 1), nil},
		{"multibyte", KeyEvent{Char: "é"}, edit("", 0), &InputState{Value: "é", CursorPos: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InputPrintableHandler(tt.ev, tt.state)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("got %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestNavigationHandler(t *testing.T) {
	tests := []struct {
		name       string
		ev         KeyEvent
		state      InputState
		wantCursor int
	}{
		{"left", KeyEvent{Name: KeyLeft}, edit("abc", 2), 1},
		{"left at start", KeyEvent{Name: KeyLeft}, edit("abc", 0), 0},
		{"right", KeyEvent{Name: KeyRight}, edit("abc", 1), 2},
		{"right at end", KeyEvent{Name: KeyRight}, edit("abc", 3), 3},
		{"home", KeyEvent{Name: KeyHome}, edit("abc", 2), 0},
		{"ctrl-a", KeyEvent{Name: "a", Ctrl: true}, edit("abc", 2), 0},
		{"end", KeyEvent{Name: KeyEnd}, edit("abc", 1), 3},
		{"ctrl-e", KeyEvent{Name: "e", Ctrl: true}, edit("abc", 1), 3},
		{"word left", KeyEvent{Name: KeyLeft, Alt: true}, edit("foo bar", 7), 4},
		{"word left from middle", KeyEvent{Name: KeyLeft, Alt: true}, edit("foo bar", 5), 4},
		{"word right", KeyEvent{Name: KeyRight, Alt: true}, edit("foo bar", 0), 3},
		{"word right over space", KeyEvent{Name: KeyRight, Alt: true}, edit("foo bar", 3), 7},
		{"word left multibyte", KeyEvent{Name: KeyLeft, Alt: true}, edit("héllo wörld", 13), 7},
		{"word right multibyte", KeyEvent{Name: KeyRight, Alt: true}, edit("héllo wörld", 0), 6},
		{"multibyte left", KeyEvent{Name: KeyLeft}, edit("é", 2), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InputNavigationHandler(tt.ev, tt.state)
			if got == nil {
				t.Fatal("navigation key should be consumed")
			}
			if got.CursorPos != tt.wantCursor {
				t.Fatalf("cursor = %d, want %d", got.CursorPos, tt.wantCursor)
			}
			if got.Value != tt.state.Value {
				t.Fatalf("navigation must not edit: %q", got.Value)
			}
		})
	}
}

func TestDeletionHandler(t *testing.T) {
	tests := []struct {
		name  string
		ev    KeyEvent
		state InputState
		want  InputState
	}{
		{"backspace", KeyEvent{Name: KeyBackspace}, edit("abc", 2), edit("ac", 1)},
		{"backspace at start", KeyEvent{Name: KeyBackspace}, edit("abc", 0), edit("abc", 0)},
		{"backspace multibyte", KeyEvent{Name: KeyBackspace}, edit("aé", 3), edit("a", 1)},
		{"delete", KeyEvent{Name: KeyDelete}, edit("abc", 1), edit("ac", 1)},
		{"delete at end", KeyEvent{Name: KeyDelete}, edit("abc", 3), edit("abc", 3)},
		{"ctrl-u to start", KeyEvent{Name: "u", Ctrl: true}, edit("abcdef", 3), edit("def", 0)},
		{"ctrl-k to end", KeyEvent{Name: "k", Ctrl: true}, edit("abcdef", 3), edit("abc", 3)},
		{"ctrl-w word", KeyEvent{Name: "w", Ctrl: true}, edit("foo bar", 7), edit("foo ", 4)},
		{"alt-backspace word", KeyEvent{Name: KeyBackspace, Alt: true}, edit("foo bar", 7), edit("foo ", 4)},
		{"ctrl-w trailing space", KeyEvent{Name: "w", Ctrl: true}, edit("foo bar ", 8), edit("foo ", 4)},
		{"alt-backspace multibyte word", KeyEvent{Name: KeyBackspace, Alt: true}, edit("héllo", 6), edit("", 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InputDeletionHandler(tt.ev, tt.state)
			if got == nil {
				t.Fatal("deletion key should be consumed")
			}
			if *got != tt.want {
				t.Fatalf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestComposeHandlersOrder(t *testing.T) {
	first := func(ev KeyEvent, s InputState) *InputState {
		if ev.Char == "x" {
			return &InputState{Value: "first"}
		}
		return nil
	}
	second := func(ev KeyEvent, s InputState) *InputState {
		return &InputState{Value: "second"}
	}
	h := ComposeInputHandlers(first, second)
	if got := h(KeyEvent{Char: "x"}, InputState{}); got.Value != "first" {
		t.Fatalf("got %q, want first handler to win", got.Value)
	}
	if got := h(KeyEvent{Char: "y"}, InputState{}); got.Value != "second" {
		t.Fatalf("got %q, want fallthrough to second", got.Value)
	}
}

func TestDefaultHandlerBubblesUnknown(t *testing.T) {
	if got := DefaultInputHandler(KeyEvent{Name: KeyTab}, edit("ab", 1)); got != nil {
		t.Fatalf("tab should bubble, got %+v", got)
	}
}

func TestElementStatesSeedAndRetain(t *testing.T) {
	s := NewElementStates()
	st := s.Input("name", "seed")
	if st.Value != "seed" || st.CursorPos != 4 {
		t.Fatalf("seeded state = %+v", st)
	}

	s.SetInput("name", InputState{Value: "hi", CursorPos: 99})
	if got := s.Input("name", "seed"); got.Value != "hi" || got.CursorPos != 2 {
		t.Fatalf("cursor should clamp to value length: %+v", got)
	}

	s.Select("lang").Open = true
	s.ToggleCheckbox("agree", false)

	s.Retain(map[string]bool{"name": true})
	if s.Select("lang").Open {
		t.Fatal("dropped select state should reset")
	}
	if s.Checkbox("agree", false) {
		t.Fatal("dropped checkbox state should reset")
	}
	if got := s.Input("name", ""); got.Value != "hi" {
		t.Fatal("retained input state should survive")
	}
}

func TestToggleCheckbox(t *testing.T) {
	s := NewElementStates()
	if !s.ToggleCheckbox("a", false) {
		t.Fatal("first toggle should check")
	}
	if s.ToggleCheckbox("a", false) {
		t.Fatal("second toggle should uncheck")
	}
	// Declared true with no override reads true.
	if !s.Checkbox("b", true) {
		t.Fatal("declared state should show through")
	}
}
