package tuikit

import (
	"strings"
	"testing"

	"github.com/germtb/gox"
)

func textVNode(text string, props gox.Props) gox.VNode {
	if props == nil {
		props = gox.Props{}
	}
	return gox.VNode{
		Type:     "text",
		Props:    props,
		Children: []gox.VNode{CreateTextNode(text)},
	}
}

func boxVNode(props gox.Props, children ...gox.VNode) gox.VNode {
	if props == nil {
		props = gox.Props{}
	}
	return gox.VNode{Type: "box", Props: props, Children: children}
}

func TestSprintPlainText(t *testing.T) {
	got := Sprint(textVNode("hello", nil))
	if got != "hello\n" {
		t.Fatalf("Sprint = %q", got)
	}
}

func TestSprintMultipleLines(t *testing.T) {
	got := Sprint(boxVNode(nil,
		textVNode("one", nil),
		textVNode("two", nil),
	))
	if got != "one\ntwo\n" {
		t.Fatalf("Sprint = %q", got)
	}
}

func TestSprintStyledText(t *testing.T) {
	got := Sprint(textVNode("warn", gox.Props{"color": "red"}))
	if !strings.Contains(got, "38;2;205;49;49") {
		t.Fatalf("output missing color sequence: %q", got)
	}
	if !strings.Contains(got, "\x1b[0m") {
		t.Fatalf("styled row should reset: %q", got)
	}
	if StripANSI(got) != "warn\n" {
		t.Fatalf("visible text = %q", StripANSI(got))
	}
}

func TestSprintWideRunes(t *testing.T) {
	got := Sprint(textVNode("日本", nil))
	if got != "日本\n" {
		t.Fatalf("Sprint = %q", got)
	}
	if strings.ContainsRune(got, 0) {
		t.Fatal("output contains NUL continuation cells")
	}
}

func TestFprintWidthOption(t *testing.T) {
	var sb strings.Builder
	Fprint(&sb, textVNode("abcdefghijklmnop", nil), PrintOptions{Width: 8})
	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		if n := len([]rune(StripANSI(line))); n > 8 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
}

func TestFprintEmptyTree(t *testing.T) {
	var sb strings.Builder
	Fprint(&sb, boxVNode(gox.Props{"height": 0}), PrintOptions{Width: 10, Height: 5})
	if sb.String() != "" {
		t.Fatalf("empty tree output = %q", sb.String())
	}
}

func TestPrintBorderedBox(t *testing.T) {
	var sb strings.Builder
	Fprint(&sb, boxVNode(gox.Props{"border": "single", "width": 4, "height": 3}),
		PrintOptions{Width: 10, Height: 5})
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %q", len(lines), sb.String())
	}
	if top := StripANSI(lines[0]); top != "┌──┐" {
		t.Fatalf("top border = %q", top)
	}
}
