// Package tuikit provides ANSI escape code generation for terminal output.
package tuikit

import (
	"strconv"
	"strings"
)

const (
	ESC = "\x1b"
	CSI = ESC + "["
)

// Terminal control sequences. These are bit-exact contracts with the
// terminal; tests compare against them literally.
const (
	EnterAltScreen = CSI + "?1049h"
	ExitAltScreen  = CSI + "?1049l"
	HideCursor     = CSI + "?25l"
	ShowCursor     = CSI + "?25h"
	EnableMouse    = CSI + "?1000h" + CSI + "?1002h" + CSI + "?1006h"
	DisableMouse   = CSI + "?1006l" + CSI + "?1002l" + CSI + "?1000l"
	ClearScreen    = CSI + "2J" + CSI + "H"
	Reset          = CSI + "0m"
	CursorHome     = CSI + "H"
)

// MoveCursor returns the sequence moving the cursor to the 0-based cell
// (x, y). The wire format is 1-based CSI {row};{col}H.
func MoveCursor(x, y int) string {
	return CSI + strconv.Itoa(y+1) + ";" + strconv.Itoa(x+1) + "H"
}

// writeStyle emits the SGR codes that take the terminal from prev to
// next. A nil prev means the terminal state is unknown and a reset is
// emitted first. When any attribute flips from on to off a full reset
// is emitted before re-applying, because SGR has no selective clear for
// a single attribute.
func writeStyle(sb *strings.Builder, prev *Style, next Style) {
	if prev == nil || attrDropped(*prev, next) {
		sb.WriteString(Reset)
		writeStyleFull(sb, next)
		return
	}
	if !prev.Bold && next.Bold {
		sb.WriteString(CSI + "1m")
	}
	if !prev.Dim && next.Dim {
		sb.WriteString(CSI + "2m")
	}
	if !prev.Italic && next.Italic {
		sb.WriteString(CSI + "3m")
	}
	if !prev.Underline && next.Underline {
		sb.WriteString(CSI + "4m")
	}
	if !prev.Inverse && next.Inverse {
		sb.WriteString(CSI + "7m")
	}
	if !prev.Strikethrough && next.Strikethrough {
		sb.WriteString(CSI + "9m")
	}
	if next.Fg != nil && !rgbaEqual(prev.Fg, next.Fg) {
		writeColor(sb, *next.Fg, true)
	}
	if next.Bg != nil && !rgbaEqual(prev.Bg, next.Bg) {
		writeColor(sb, *next.Bg, false)
	}
}

func writeStyleFull(sb *strings.Builder, s Style) {
	if s.Bold {
		sb.WriteString(CSI + "1m")
	}
	if s.Dim {
		sb.WriteString(CSI + "2m")
	}
	if s.Italic {
		sb.WriteString(CSI + "3m")
	}
	if s.Underline {
		sb.WriteString(CSI + "4m")
	}
	if s.Inverse {
		sb.WriteString(CSI + "7m")
	}
	if s.Strikethrough {
		sb.WriteString(CSI + "9m")
	}
	if s.Fg != nil {
		writeColor(sb, *s.Fg, true)
	}
	if s.Bg != nil {
		writeColor(sb, *s.Bg, false)
	}
}

// writeColor emits a truecolor SGR: CSI 38;2;r;g;bm or CSI 48;2;r;g;bm.
func writeColor(sb *strings.Builder, c RGBA, fg bool) {
	sb.WriteString(CSI)
	if fg {
		sb.WriteString("38;2;")
	} else {
		sb.WriteString("48;2;")
	}
	sb.WriteString(strconv.Itoa(int(c.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.B)))
	sb.WriteByte('m')
}
