package tuikit

import (
	"testing"

	"github.com/germtb/gox"
)

func TestExpandFlattensComponents(t *testing.T) {
	var banner gox.Component = func(props gox.Props) gox.VNode {
		label, _ := props["label"].(string)
		return gox.Element("box", gox.Props{}, CreateTextNode(label))
	}
	got := Expand(gox.VNode{Type: banner, Props: gox.Props{"label": "hi"}})
	if tag, _ := TypeString(got); tag != "box" {
		t.Fatalf("expanded tag = %q", tag)
	}
	if txt, _ := GetTextContent(got.Children[0]); txt != "hi" {
		t.Fatalf("text content = %q", txt)
	}
}

func TestExpandPassesChildrenProp(t *testing.T) {
	var wrap gox.Component = func(props gox.Props) gox.VNode {
		children, _ := props["children"].([]gox.VNode)
		return gox.Element("box", gox.Props{}, children...)
	}
	got := Expand(gox.VNode{
		Type:     wrap,
		Props:    gox.Props{},
		Children: []gox.VNode{CreateTextNode("a"), CreateTextNode("b")},
	})
	if len(got.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(got.Children))
	}
}

func TestTextContentKeys(t *testing.T) {
	if txt, ok := GetTextContent(CreateTextNode("x")); !ok || txt != "x" {
		t.Fatalf("text = %q, ok = %v", txt, ok)
	}
	leaf := gox.VNode{Type: gox.TextNodeType, Props: gox.Props{"text": "y"}}
	if txt, _ := GetTextContent(leaf); txt != "y" {
		t.Fatalf("fallback key text = %q", txt)
	}
	if _, ok := GetTextContent(gox.Element("box", gox.Props{})); ok {
		t.Fatal("non-text node should not report content")
	}
}
