// Package tuikit sits on gox element trees. The helpers here classify
// raw VNodes and flatten functional components, so the rest of the
// engine only ever deals with intrinsic tags and text leaves.
package tuikit

import (
	"github.com/germtb/gox"
)

// CreateTextNode wraps a string in a gox text leaf.
func CreateTextNode(text string) gox.VNode {
	return gox.VNode{
		Type:  gox.TextNodeType,
		Props: gox.Props{"text": text, "content": text},
	}
}

// TypeString returns the node's intrinsic tag. Functional components
// carry non-string types and report false.
func TypeString(v gox.VNode) (string, bool) {
	tag, ok := v.Type.(string)
	return tag, ok
}

// IsTextNode reports whether the node is a text leaf.
func IsTextNode(v gox.VNode) bool {
	tag, ok := TypeString(v)
	return ok && tag == gox.TextNodeType
}

// GetTextContent extracts the string carried by a text leaf. gox stores
// it under "content"; trees built by hand may use "text".
func GetTextContent(v gox.VNode) (string, bool) {
	if !IsTextNode(v) {
		return "", false
	}
	for _, key := range []string{"content", "text"} {
		if s, ok := v.Props[key].(string); ok {
			return s, true
		}
	}
	return "", false
}

// Expand flattens functional components by invoking them with their
// props, children included, until only intrinsic tags and text remain.
func Expand(v gox.VNode) gox.VNode {
	if comp, ok := v.Type.(gox.Component); ok {
		props := make(gox.Props, len(v.Props)+1)
		for k, val := range v.Props {
			props[k] = val
		}
		props["children"] = v.Children
		return Expand(comp(props))
	}
	if len(v.Children) == 0 {
		return v
	}
	children := make([]gox.VNode, len(v.Children))
	for i, child := range v.Children {
		children[i] = Expand(child)
	}
	v.Children = children
	return v
}
