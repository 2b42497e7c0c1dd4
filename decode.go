// Package tuikit provides the input decoder: raw terminal bytes in,
// key and mouse events out.
package tuikit

import "unicode/utf8"

// Event is a decoded input event: either a KeyEvent or a MouseEvent.
type Event interface{ isEvent() }

// KeyEvent is a decoded keyboard event.
type KeyEvent struct {
	Name     string // named key ("up", "return", ...) or "" for plain runes
	Char     string // printable character, if any
	Ctrl     bool
	Alt      bool
	Shift    bool
	Meta     bool
	Sequence string // the raw bytes this event was decoded from
}

func (KeyEvent) isEvent() {}

// MouseAction is the kind of a mouse event.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
	MouseDrag
	MouseScroll
)

// MouseButton identifies which button an event refers to.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// ScrollDirection is the wheel direction for MouseScroll events.
type ScrollDirection uint8

const (
	ScrollNone ScrollDirection = iota
	ScrollUp
	ScrollDown
)

// MouseEvent is a decoded mouse event with 0-based cell coordinates.
type MouseEvent struct {
	Action          MouseAction
	Button          MouseButton
	X               int
	Y               int
	Ctrl            bool
	Alt             bool
	Shift           bool
	ScrollDirection ScrollDirection
}

func (MouseEvent) isEvent() {}

// Decode parses a buffer of raw terminal bytes into events. Malformed
// or unknown escape sequences decode to a generic escape key rather
// than failing; invalid UTF-8 bytes are skipped.
func Decode(data []byte) []Event {
	var events []Event
	i := 0

	for i < len(data) {
		b := data[i]

		if b == 0x1b {
			ev, consumed := decodeEscape(data[i:])
			events = append(events, ev...)
			i += consumed
			continue
		}

		// Control bytes 0x01-0x1a map to ctrl+letter; a handful have
		// dedicated names (tab, return, backspace).
		if b < 0x20 || b == 0x7f {
			events = append(events, decodeControl(b))
			i++
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		seq := string(data[i : i+size])
		if r == ' ' {
			events = append(events, KeyEvent{Name: KeySpace, Char: " ", Sequence: seq})
		} else {
			events = append(events, KeyEvent{Char: string(r), Sequence: seq})
		}
		i += size
	}

	return events
}

func decodeControl(b byte) KeyEvent {
	seq := string([]byte{b})
	if name, ok := singleByteKeys[b]; ok {
		return KeyEvent{Name: name, Sequence: seq}
	}
	if b >= 0x01 && b <= 0x1a {
		letter := string(rune('a' + b - 1))
		return KeyEvent{Name: letter, Char: letter, Ctrl: true, Sequence: seq}
	}
	return KeyEvent{Name: KeyEscape, Sequence: seq}
}

// decodeEscape handles sequences starting with ESC. Returns the decoded
// events and the number of bytes consumed (always at least 1).
func decodeEscape(data []byte) ([]Event, int) {
	if len(data) == 1 {
		return []Event{KeyEvent{Name: KeyEscape, Sequence: "\x1b"}}, 1
	}

	switch data[1] {
	case '[':
		if len(data) >= 3 && data[2] == '<' {
			if ev, n := decodeMouseSGR(data); n > 0 {
				return []Event{ev}, n
			}
		}
		if len(data) >= 3 && data[2] == 'M' {
			if ev, n := decodeMouseX10(data); n > 0 {
				return []Event{ev}, n
			}
		}
		if ev, n := decodeCSI(data); n > 0 {
			return []Event{ev}, n
		}
		return []Event{KeyEvent{Name: KeyEscape, Sequence: "\x1b"}}, 1

	case 'O':
		if len(data) >= 3 {
			if name, ok := ss3Keys[data[2]]; ok {
				return []Event{KeyEvent{Name: name, Sequence: string(data[:3])}}, 3
			}
		}
		return []Event{KeyEvent{Name: KeyEscape, Sequence: "\x1b"}}, 1

	default:
		// Alt+key: ESC followed by a printable byte.
		if data[1] >= 0x20 && data[1] < 0x7f {
			ch := string(rune(data[1]))
			return []Event{KeyEvent{Name: ch, Char: ch, Alt: true, Sequence: string(data[:2])}}, 2
		}
		return []Event{KeyEvent{Name: KeyEscape, Sequence: "\x1b"}}, 1
	}
}

// decodeCSI parses ESC [ params final. Returns the event and bytes
// consumed; consumed 0 means the sequence is unknown or incomplete.
func decodeCSI(data []byte) (KeyEvent, int) {
	var params []int
	cur, hasCur := 0, false

	i := 2
	for i < len(data) {
		b := data[i]
		switch {
		case b >= '0' && b <= '9':
			cur = cur*10 + int(b-'0')
			hasCur = true
			i++
		case b == ';':
			params = append(params, cur)
			cur, hasCur = 0, false
			i++
		case b >= 0x40 && b <= 0x7e:
			if hasCur {
				params = append(params, cur)
			}
			ev, ok := csiToKey(params, b)
			if !ok {
				return KeyEvent{}, 0
			}
			ev.Sequence = string(data[:i+1])
			return ev, i + 1
		default:
			return KeyEvent{}, 0
		}
	}
	return KeyEvent{}, 0
}

func csiToKey(params []int, final byte) (KeyEvent, bool) {
	ev := KeyEvent{}

	// Modifier-encoded variants: ESC [ 1 ; mod letter.
	if len(params) >= 2 {
		applyCSIModifier(&ev, params[1])
	}

	if final == '~' {
		if len(params) == 0 {
			return KeyEvent{}, false
		}
		name, ok := csiTildeKeys[params[0]]
		if !ok {
			return KeyEvent{}, false
		}
		ev.Name = name
		return ev, true
	}

	if final == 'Z' {
		ev.Name = KeyTab
		ev.Shift = true
		return ev, true
	}

	if name, ok := csiFinalKeys[final]; ok {
		ev.Name = name
		return ev, true
	}
	return KeyEvent{}, false
}

// applyCSIModifier decodes the xterm modifier parameter: the value is
// 1 + (shift:1 | alt:2 | ctrl:4 | meta:8). Values above the standard
// range fall back to the same bitwise decoding.
func applyCSIModifier(ev *KeyEvent, param int) {
	if param <= 1 {
		return
	}
	flags := param - 1
	ev.Shift = flags&1 != 0
	ev.Alt = flags&2 != 0
	ev.Ctrl = flags&4 != 0
	ev.Meta = flags&8 != 0
}

// decodeMouseSGR parses an SGR-1006 sequence:
// ESC [ < Cb ; Cx ; Cy (M|m). Button lives in bits 0-1, modifiers in
// bits 2-4, motion in bit 5, scroll in bit 6 with direction in bit 0.
func decodeMouseSGR(data []byte) (MouseEvent, int) {
	if len(data) < 6 || data[0] != 0x1b || data[1] != '[' || data[2] != '<' {
		return MouseEvent{}, 0
	}

	var vals [3]int
	stage := 0
	i := 3
	for i < len(data) {
		b := data[i]
		switch {
		case b >= '0' && b <= '9':
			vals[stage] = vals[stage]*10 + int(b-'0')
			i++
		case b == ';':
			stage++
			if stage > 2 {
				return MouseEvent{}, 0
			}
			i++
		case b == 'M' || b == 'm':
			if stage != 2 {
				return MouseEvent{}, 0
			}
			return mouseFromCode(vals[0], vals[1]-1, vals[2]-1, b == 'm'), i + 1
		default:
			return MouseEvent{}, 0
		}
	}
	return MouseEvent{}, 0
}

// decodeMouseX10 parses the legacy 3-byte protocol: ESC [ M b x y with
// the button offset by 32 and coordinates by 33.
func decodeMouseX10(data []byte) (MouseEvent, int) {
	if len(data) < 6 {
		return MouseEvent{}, 0
	}
	code := int(data[3]) - 32
	x := int(data[4]) - 33
	y := int(data[5]) - 33
	release := code&3 == 3 && code&64 == 0
	ev := mouseFromCode(code, x, y, release)
	return ev, 6
}

func mouseFromCode(code, x, y int, release bool) MouseEvent {
	ev := MouseEvent{
		X:     max(0, x),
		Y:     max(0, y),
		Shift: code&4 != 0,
		Alt:   code&8 != 0,
		Ctrl:  code&16 != 0,
	}

	if code&64 != 0 {
		ev.Action = MouseScroll
		if code&1 != 0 {
			ev.ScrollDirection = ScrollDown
		} else {
			ev.ScrollDirection = ScrollUp
		}
		return ev
	}

	switch code & 3 {
	case 0:
		ev.Button = MouseButtonLeft
	case 1:
		ev.Button = MouseButtonMiddle
	case 2:
		ev.Button = MouseButtonRight
	case 3:
		ev.Button = MouseButtonNone
	}

	switch {
	case code&32 != 0 && ev.Button != MouseButtonNone:
		ev.Action = MouseDrag
	case code&32 != 0:
		ev.Action = MouseMove
	case release || (code&3 == 3):
		ev.Action = MouseRelease
	default:
		ev.Action = MousePress
	}
	return ev
}
