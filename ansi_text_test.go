package tuikit

import (
	"reflect"
	"testing"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"\x1b[31mred\x1b[0m", "red"},
		{"a\x1b[1;38;2;10;20;30mb\x1b[mc", "abc"},
		{"\x1b[2J\x1b[Hcleared", "cleared"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripANSI(tt.input); got != tt.want {
			t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseANSILinePlain(t *testing.T) {
	base := Style{Bold: true}
	segs := ParseANSILine("hello", base)
	want := []StyledSegment{{Text: "hello", Style: base}}
	if !reflect.DeepEqual(segs, want) {
		t.Fatalf("segments = %+v", segs)
	}
}

func TestParseANSILineSegments(t *testing.T) {
	segs := ParseANSILine("a\x1b[31mb\x1b[0mc", EmptyStyle)
	if len(segs) != 3 {
		t.Fatalf("got %d segments: %+v", len(segs), segs)
	}
	if segs[0].Text != "a" || segs[0].Style.Fg != nil {
		t.Fatalf("segment 0 = %+v", segs[0])
	}
	if segs[1].Text != "b" || segs[1].Style.Fg == nil || *segs[1].Style.Fg != ansiPalette[1] {
		t.Fatalf("segment 1 = %+v", segs[1])
	}
	if segs[2].Text != "c" || segs[2].Style.Fg != nil {
		t.Fatalf("segment 2 = %+v", segs[2])
	}
}

func TestParseANSILineResetRestoresBase(t *testing.T) {
	red := RGBA{205, 49, 49, 255}
	base := Style{Fg: &red, Bold: true}
	segs := ParseANSILine("\x1b[32mgreen\x1b[0mbase", base)
	if len(segs) != 2 {
		t.Fatalf("got %d segments", len(segs))
	}
	if !segs[0].Style.Bold {
		t.Fatal("attributes layer on the base style")
	}
	last := segs[1].Style
	if last.Fg == nil || *last.Fg != red || !last.Bold {
		t.Fatalf("reset should restore base, got %+v", last)
	}
}

func TestParseANSILineAttributes(t *testing.T) {
	segs := ParseANSILine("\x1b[1;3;4mx\x1b[22;23;24my", EmptyStyle)
	if len(segs) != 2 {
		t.Fatalf("got %d segments", len(segs))
	}
	s := segs[0].Style
	if !s.Bold || !s.Italic || !s.Underline {
		t.Fatalf("segment 0 style = %+v", s)
	}
	s = segs[1].Style
	if s.Bold || s.Italic || s.Underline {
		t.Fatalf("segment 1 style = %+v", s)
	}
}

func TestParseANSILineTruecolor(t *testing.T) {
	segs := ParseANSILine("\x1b[38;2;10;20;30;48;5;196mx", EmptyStyle)
	if len(segs) != 1 {
		t.Fatalf("got %d segments", len(segs))
	}
	s := segs[0].Style
	if s.Fg == nil || *s.Fg != (RGBA{10, 20, 30, 255}) {
		t.Fatalf("fg = %+v", s.Fg)
	}
	if s.Bg == nil || *s.Bg != color256(196) {
		t.Fatalf("bg = %+v", s.Bg)
	}
}

func TestColor256(t *testing.T) {
	tests := []struct {
		n    int
		want RGBA
	}{
		{0, ansiPalette[0]},
		{15, ansiPalette[15]},
		{16, RGBA{0, 0, 0, 255}},        // cube origin
		{231, RGBA{255, 255, 255, 255}}, // cube max
		{196, RGBA{255, 0, 0, 255}},     // pure red in the cube
		{232, RGBA{8, 8, 8, 255}},       // grayscale start
		{255, RGBA{238, 238, 238, 255}}, // grayscale end
	}
	for _, tt := range tests {
		if got := color256(tt.n); got != tt.want {
			t.Errorf("color256(%d) = %+v, want %+v", tt.n, got, tt.want)
		}
	}
}

func TestContainsANSI(t *testing.T) {
	if ContainsANSI("plain") {
		t.Fatal("plain text should not contain escapes")
	}
	if !ContainsANSI("a\x1b[31mb") {
		t.Fatal("escape not detected")
	}
}
