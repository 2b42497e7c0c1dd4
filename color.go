// Package tuikit provides color parsing and compositing for terminal rendering.
package tuikit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a 24-bit color with an alpha channel.
// Alpha 255 is fully opaque; painted cells always end up opaque after Blend.
type RGBA struct {
	R, G, B, A uint8
}

// Hex returns the color as "#rrggbb", or "#rrggbbaa" when not fully opaque.
func (c RGBA) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Blend composites fg over bg using standard over-compositing:
// a' = a_fg + a_bg*(1-a_fg).
func Blend(fg, bg RGBA) RGBA {
	if fg.A == 255 {
		return fg
	}
	if fg.A == 0 {
		return bg
	}
	fa := float64(fg.A) / 255
	ba := float64(bg.A) / 255
	outA := fa + ba*(1-fa)
	if outA == 0 {
		return RGBA{}
	}
	blend := func(f, b uint8) uint8 {
		v := (float64(f)*fa + float64(b)*ba*(1-fa)) / outA
		if v > 255 {
			v = 255
		}
		return uint8(v + 0.5)
	}
	return RGBA{
		R: blend(fg.R, bg.R),
		G: blend(fg.G, bg.G),
		B: blend(fg.B, bg.B),
		A: uint8(outA*255 + 0.5),
	}
}

// NamedColors maps CSS-style color names to RGBA values.
var NamedColors = map[string]RGBA{
	"black":   {0, 0, 0, 255},
	"red":     {205, 49, 49, 255},
	"green":   {13, 188, 121, 255},
	"yellow":  {229, 229, 16, 255},
	"blue":    {36, 114, 200, 255},
	"magenta": {188, 63, 188, 255},
	"cyan":    {17, 168, 205, 255},
	"white":   {229, 229, 229, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"pink":    {255, 192, 203, 255},
	"brown":   {165, 42, 42, 255},

	"brightblack":   {102, 102, 102, 255},
	"brightred":     {241, 76, 76, 255},
	"brightgreen":   {35, 209, 139, 255},
	"brightyellow":  {245, 245, 67, 255},
	"brightblue":    {59, 142, 234, 255},
	"brightmagenta": {214, 112, 214, 255},
	"brightcyan":    {41, 184, 219, 255},
	"brightwhite":   {255, 255, 255, 255},

	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a color string into an RGBA value.
// Accepts hex (#rgb, #rrggbb, #rrggbbaa), rgb()/rgba(), hsl()/hsla(),
// and named colors. Returns nil for anything it cannot parse.
func ParseColor(text string) *RGBA {
	s := strings.TrimSpace(strings.ToLower(text))
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBFunc(s)
	}
	if strings.HasPrefix(s, "hsl(") || strings.HasPrefix(s, "hsla(") {
		return parseHSLFunc(s)
	}
	if c, ok := NamedColors[s]; ok {
		out := c
		return &out
	}
	return nil
}

func parseHex(s string) *RGBA {
	hex := s[1:]
	switch len(hex) {
	case 3:
		r, okR := hexNibble(hex[0])
		g, okG := hexNibble(hex[1])
		b, okB := hexNibble(hex[2])
		if !okR || !okG || !okB {
			return nil
		}
		return &RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}
	case 6, 8:
		v, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return nil
		}
		if len(hex) == 6 {
			return &RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
		}
		return &RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	default:
		return nil
	}
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	default:
		return 0, false
	}
}

// funcArgs extracts the comma-separated arguments of "name(a, b, c)".
func funcArgs(s string) []string {
	open := strings.IndexByte(s, '(')
	close := strings.LastIndexByte(s, ')')
	if open < 0 || close < open {
		return nil
	}
	parts := strings.Split(s[open+1:close], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseRGBFunc(s string) *RGBA {
	args := funcArgs(s)
	if len(args) != 3 && len(args) != 4 {
		return nil
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(args[i])
		if err != nil || v < 0 || v > 255 {
			return nil
		}
		ch[i] = uint8(v)
	}
	a := uint8(255)
	if len(args) == 4 {
		f, err := strconv.ParseFloat(args[3], 64)
		if err != nil || f < 0 || f > 1 {
			return nil
		}
		a = uint8(f*255 + 0.5)
	}
	return &RGBA{R: ch[0], G: ch[1], B: ch[2], A: a}
}

func parseHSLFunc(s string) *RGBA {
	args := funcArgs(s)
	if len(args) != 3 && len(args) != 4 {
		return nil
	}
	h, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return nil
	}
	sat, err := parsePercent(args[1])
	if err != nil {
		return nil
	}
	light, err := parsePercent(args[2])
	if err != nil {
		return nil
	}
	a := uint8(255)
	if len(args) == 4 {
		f, err := strconv.ParseFloat(args[3], 64)
		if err != nil || f < 0 || f > 1 {
			return nil
		}
		a = uint8(f*255 + 0.5)
	}

	c := colorful.Hsl(h, sat, light).Clamped()
	r, g, b := c.RGB255()
	return &RGBA{R: r, G: g, B: b, A: a}
}

func parsePercent(s string) (float64, error) {
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v / 100, nil
}
