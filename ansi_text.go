// Package tuikit provides parsing of ANSI-styled text content, so text
// that already carries escape codes (command output, log lines) paints
// with its embedded styling instead of raw escape bytes.
package tuikit

import "strings"

// ContainsANSI reports whether the string holds ANSI escape sequences.
func ContainsANSI(s string) bool {
	return strings.Contains(s, "\x1b[")
}

// StripANSI removes escape sequences, leaving the visible text.
func StripANSI(s string) string {
	if !ContainsANSI(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		switch {
		case s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[':
			i += 2
			for i < len(s) && !(s[i] >= 0x40 && s[i] <= 0x7e) {
				i++
			}
			if i < len(s) {
				i++
			}
		case s[i] == '\x1b':
			i += 2
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// StyledSegment is a run of text with one resolved style.
type StyledSegment struct {
	Text  string
	Style Style
}

// ParseANSILine splits a line with embedded SGR codes into styled
// segments. The base style is the element's own; escape codes layer on
// top of it and a reset returns to it.
func ParseANSILine(line string, base Style) []StyledSegment {
	if !ContainsANSI(line) {
		return []StyledSegment{{Text: line, Style: base}}
	}

	var segments []StyledSegment
	current := base
	var text strings.Builder

	i := 0
	for i < len(line) {
		switch {
		case line[i] == '\x1b' && i+1 < len(line) && line[i+1] == '[':
			if text.Len() > 0 {
				segments = append(segments, StyledSegment{Text: text.String(), Style: current})
				text.Reset()
			}
			i += 2
			paramStart := i
			for i < len(line) && !(line[i] >= 0x40 && line[i] <= 0x7e) {
				i++
			}
			if i < len(line) {
				if line[i] == 'm' {
					applySGR(line[paramStart:i], &current, base)
				}
				i++
			}
		case line[i] == '\x1b':
			i += 2
		default:
			text.WriteByte(line[i])
			i++
		}
	}

	if text.Len() > 0 {
		segments = append(segments, StyledSegment{Text: text.String(), Style: current})
	}
	return segments
}

// ansiPalette is the standard 16-color palette in truecolor terms.
var ansiPalette = [16]RGBA{
	{0, 0, 0, 255},       // black
	{205, 49, 49, 255},   // red
	{13, 188, 121, 255},  // green
	{229, 229, 16, 255},  // yellow
	{36, 114, 200, 255},  // blue
	{188, 63, 188, 255},  // magenta
	{17, 168, 205, 255},  // cyan
	{229, 229, 229, 255}, // white
	{102, 102, 102, 255}, // bright black
	{241, 76, 76, 255},   // bright red
	{35, 209, 139, 255},  // bright green
	{245, 245, 67, 255},  // bright yellow
	{59, 142, 234, 255},  // bright blue
	{214, 112, 214, 255}, // bright magenta
	{41, 184, 219, 255},  // bright cyan
	{255, 255, 255, 255}, // bright white
}

// color256 maps a 256-color index to its truecolor value.
func color256(n int) RGBA {
	switch {
	case n >= 0 && n <= 15:
		return ansiPalette[n]
	case n >= 16 && n <= 231:
		n -= 16
		b := n % 6
		g := (n / 6) % 6
		r := n / 36
		scale := func(v int) uint8 {
			if v == 0 {
				return 0
			}
			return uint8(55 + v*40)
		}
		return RGBA{R: scale(r), G: scale(g), B: scale(b), A: 255}
	case n >= 232 && n <= 255:
		v := uint8((n-232)*10 + 8)
		return RGBA{R: v, G: v, B: v, A: 255}
	}
	return RGBA{A: 255}
}

// applySGR applies a semicolon-separated SGR parameter list to a style.
func applySGR(paramStr string, style *Style, base Style) {
	if paramStr == "" {
		*style = base
		return
	}

	params := parseSGRParams(paramStr)
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			*style = base
		case p == 1:
			style.Bold = true
		case p == 2:
			style.Dim = true
		case p == 3:
			style.Italic = true
		case p == 4:
			style.Underline = true
		case p == 7:
			style.Inverse = true
		case p == 9:
			style.Strikethrough = true
		case p == 22:
			style.Bold = false
			style.Dim = false
		case p == 23:
			style.Italic = false
		case p == 24:
			style.Underline = false
		case p == 27:
			style.Inverse = false
		case p == 29:
			style.Strikethrough = false

		case p >= 30 && p <= 37:
			c := ansiPalette[p-30]
			style.Fg = &c
		case p == 39:
			style.Fg = base.Fg
		case p >= 40 && p <= 47:
			c := ansiPalette[p-40]
			style.Bg = &c
		case p == 49:
			style.Bg = base.Bg
		case p >= 90 && p <= 97:
			c := ansiPalette[p-90+8]
			style.Fg = &c
		case p >= 100 && p <= 107:
			c := ansiPalette[p-100+8]
			style.Bg = &c

		case p == 38:
			if c, skip, ok := extendedColor(params[i+1:]); ok {
				style.Fg = &c
				i += skip
			}
		case p == 48:
			if c, skip, ok := extendedColor(params[i+1:]); ok {
				style.Bg = &c
				i += skip
			}
		}
		i++
	}
}

// extendedColor decodes the tail of a 38/48 parameter: 5;N or 2;R;G;B.
// Returns the color, the number of extra parameters consumed, and
// whether the form was recognized.
func extendedColor(rest []int) (RGBA, int, bool) {
	if len(rest) >= 2 && rest[0] == 5 {
		return color256(rest[1]), 2, true
	}
	if len(rest) >= 4 && rest[0] == 2 {
		return RGBA{R: uint8(rest[1]), G: uint8(rest[2]), B: uint8(rest[3]), A: 255}, 4, true
	}
	return RGBA{}, 0, false
}

func parseSGRParams(s string) []int {
	var params []int
	n := 0
	hasDigit := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			n = n*10 + int(s[i]-'0')
			hasDigit = true
		case s[i] == ';':
			params = append(params, n)
			n = 0
			hasDigit = false
		}
	}
	if hasDigit {
		params = append(params, n)
	}
	return params
}
