// Package tuikit provides the typed node model built from gox VNode trees.
package tuikit

import (
	"strconv"
	"strings"

	"github.com/germtb/gox"
)

// NodeKind identifies an element type.
type NodeKind uint8

const (
	KindBox NodeKind = iota
	KindText
	KindInput
	KindButton
	KindCheckbox
	KindSelect
	KindList
	KindTable
	KindRule
)

// FlexDirection specifies the main axis for flex layout.
type FlexDirection uint8

const (
	DirectionColumn FlexDirection = iota
	DirectionColumnReverse
	DirectionRow
	DirectionRowReverse
)

// IsRow returns true when the main axis is horizontal.
func (d FlexDirection) IsRow() bool {
	return d == DirectionRow || d == DirectionRowReverse
}

// IsReverse returns true for the *-reverse variants.
func (d FlexDirection) IsReverse() bool {
	return d == DirectionRowReverse || d == DirectionColumnReverse
}

// Justify specifies alignment along the main axis.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// Align specifies alignment along the cross axis.
type Align uint8

const (
	AlignStretch Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

// PositionMode specifies positioning behavior.
type PositionMode uint8

const (
	PositionStatic PositionMode = iota
	PositionAbsolute
	PositionFixed
)

// Overflow specifies child clipping behavior.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

// TextAlign specifies horizontal text placement inside the inner box.
type TextAlign uint8

const (
	TextLeft TextAlign = iota
	TextCenter
	TextRight
)

// DimUnit is the unit of a sizing dimension.
type DimUnit uint8

const (
	DimAuto DimUnit = iota
	DimCells
	DimPercent
)

// Dim is a resolved-or-relative size: absolute cells, a percentage of the
// parent, or auto (content-derived).
type Dim struct {
	Unit  DimUnit
	Value int
}

// Auto is the unset dimension.
var Auto = Dim{Unit: DimAuto}

// Cells returns an absolute dimension.
func Cells(n int) Dim { return Dim{Unit: DimCells, Value: n} }

// Percent returns a percentage dimension.
func Percent(n int) Dim { return Dim{Unit: DimPercent, Value: n} }

// Resolve computes the dimension against a parent size.
// Auto resolves to -1 so callers can substitute content size.
func (d Dim) Resolve(parent int) int {
	switch d.Unit {
	case DimCells:
		return max(0, d.Value)
	case DimPercent:
		return max(0, parent*d.Value/100)
	default:
		return -1
	}
}

// Spacing represents padding or margin on all four sides.
type Spacing struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Horizontal returns left+right.
func (s Spacing) Horizontal() int { return s.Left + s.Right }

// Vertical returns top+bottom.
func (s Spacing) Vertical() int { return s.Top + s.Bottom }

// Handlers holds the interactive callbacks supplied by the tree builder.
// The core never invokes these; dispatch emits Commands and the driver
// resolves them back to handlers.
type Handlers struct {
	OnFocus    func()
	OnBlur     func()
	OnClick    func()
	OnChange   func(value string)
	OnSubmit   func(value string)
	OnKeypress func(ev KeyEvent) bool
}

// NodeStyle is the shared style/layout base carried by every node kind.
type NodeStyle struct {
	Width     Dim
	Height    Dim
	MinWidth  Dim
	MaxWidth  Dim
	MinHeight Dim
	MaxHeight Dim

	Padding Spacing
	Margin  Spacing

	Direction   FlexDirection
	Justify     Justify
	Align       Align
	FlexWrap    bool
	Gap         int
	GridColumns int

	Border      BorderStyle
	BorderColor *RGBA

	Fg        *RGBA
	Bg        *RGBA
	Text      Style
	TextAlign TextAlign
	Wrap      bool

	Position PositionMode
	Top      *int
	Left     *int
	Right    *int
	Bottom   *int
	ZIndex   int

	Overflow            Overflow
	ScrollX             int
	ScrollY             int
	ScrollbarColor      *RGBA
	ScrollbarTrackColor *RGBA
}

// InputProps carries input-specific fields.
type InputProps struct {
	Value       string
	Placeholder string
	Password    bool
}

// SelectProps carries select-specific fields.
type SelectProps struct {
	Options []string
	Value   string
}

// CheckboxProps carries checkbox-specific fields.
type CheckboxProps struct {
	Checked bool
	Label   string
}

// ListProps carries ul/ol-specific fields.
type ListProps struct {
	Ordered bool
}

// RuleProps carries hr-specific fields.
type RuleProps struct {
	Char rune
}

// Node is a typed element built from a gox VNode. One Node kind carries
// only its relevant fields; Style is the shared base.
type Node struct {
	Kind     NodeKind
	ID       string
	Style    NodeStyle
	Text     string
	Children []*Node

	Focusable bool
	TabIndex  int
	Resizable bool
	Movable   bool
	Handlers  Handlers

	Input    *InputProps
	Select   *SelectProps
	Checkbox *CheckboxProps
	List     *ListProps
	Rule     *RuleProps
}

// BuildNode expands a gox tree and converts it into a typed Node tree.
func BuildNode(v gox.VNode) *Node {
	expanded := Expand(v)
	return buildNode(expanded, "0")
}

func buildNode(v gox.VNode, path string) *Node {
	if IsTextNode(v) {
		text, _ := GetTextContent(v)
		return &Node{Kind: KindText, Text: text, Style: buildStyle(v.Props)}
	}

	tag, _ := TypeString(v)
	n := &Node{Style: buildStyle(v.Props)}

	switch tag {
	case "text", "span", "p":
		n.Kind = KindText
	case "input", "textbox":
		n.Kind = KindInput
		n.Input = &InputProps{
			Value:       getString(v.Props, "value", ""),
			Placeholder: getString(v.Props, "placeholder", ""),
			Password:    getBool(v.Props, "password", false) || getString(v.Props, "type", "") == "password",
		}
	case "button":
		n.Kind = KindButton
	case "checkbox":
		n.Kind = KindCheckbox
		n.Checkbox = &CheckboxProps{
			Checked: getBool(v.Props, "checked", false),
			Label:   getString(v.Props, "label", ""),
		}
	case "select":
		n.Kind = KindSelect
		n.Select = &SelectProps{
			Options: getStrings(v.Props, "options"),
			Value:   getString(v.Props, "value", ""),
		}
	case "ul":
		n.Kind = KindList
		n.List = &ListProps{}
	case "ol":
		n.Kind = KindList
		n.List = &ListProps{Ordered: true}
	case "table":
		n.Kind = KindTable
	case "hr":
		n.Kind = KindRule
		n.Rule = &RuleProps{Char: getRune(v.Props, "char", '─')}
	default:
		// Unknown tags behave like plain boxes rather than faulting.
		n.Kind = KindBox
	}

	n.TabIndex = getInt(v.Props, "tabIndex", 0)
	n.Focusable = getBool(v.Props, "focusable", false) ||
		n.TabIndex > 0 || isInteractive(n.Kind)
	n.Resizable = getBool(v.Props, "resizable", false)
	n.Movable = getBool(v.Props, "movable", false)
	n.Handlers = buildHandlers(v.Props)

	n.ID = getString(v.Props, "id", "")
	if n.ID == "" && n.Focusable {
		n.ID = "auto:" + path
	}

	// Direct text children become Node.Text; element children recurse.
	// Nested element text is painted by its own node, never double-painted.
	var textParts []string
	childIdx := 0
	for _, child := range v.Children {
		if IsTextNode(child) && collectsDirectText(n.Kind) {
			t, _ := GetTextContent(child)
			textParts = append(textParts, t)
			continue
		}
		if n.Kind == KindSelect {
			if s, ok := TypeString(child); ok && s == "option" {
				n.Select.Options = append(n.Select.Options, CollectText(child))
				continue
			}
		}
		n.Children = append(n.Children, buildNode(child, path+"."+strconv.Itoa(childIdx)))
		childIdx++
	}
	n.Text = strings.Join(textParts, "")

	if n.Kind == KindCheckbox && n.Checkbox.Label == "" {
		n.Checkbox.Label = n.Text
	}
	return n
}

func collectsDirectText(k NodeKind) bool {
	switch k {
	case KindBox, KindText, KindButton, KindCheckbox, KindList, KindTable:
		return true
	default:
		return false
	}
}

func isInteractive(k NodeKind) bool {
	switch k {
	case KindInput, KindButton, KindCheckbox, KindSelect:
		return true
	default:
		return false
	}
}

// CollectText recursively collects all text content from a gox node.
func CollectText(v gox.VNode) string {
	if IsTextNode(v) {
		t, _ := GetTextContent(v)
		return t
	}
	var sb strings.Builder
	for _, child := range v.Children {
		sb.WriteString(CollectText(child))
	}
	return sb.String()
}

func buildStyle(props gox.Props) NodeStyle {
	st := NodeStyle{
		Width:     getDim(props, "width"),
		Height:    getDim(props, "height"),
		MinWidth:  getDim(props, "minWidth"),
		MaxWidth:  getDim(props, "maxWidth"),
		MinHeight: getDim(props, "minHeight"),
		MaxHeight: getDim(props, "maxHeight"),
		Padding:   getSpacing(props, "padding"),
		Margin:    getSpacing(props, "margin"),
		Direction: getDirection(props),
		Justify:   getJustify(props),
		Align:     getAlign(props),
		FlexWrap:  getBool(props, "flexWrap", false) || getString(props, "flexWrap", "") == "wrap",
		Gap:       getInt(props, "gap", 0),
		Border:    getBorderStyle(props["border"]),
		TextAlign: getTextAlign(props),
		Wrap:      getBool(props, "wrap", false),
		Position:  getPosition(props),
		ZIndex:    getInt(props, "zIndex", 0),
		Overflow:  getOverflow(props),
		ScrollX:   getInt(props, "scrollX", 0),
		ScrollY:   getInt(props, "scrollY", 0),
	}

	if cols, ok := props["gridTemplateColumns"].(string); ok {
		st.GridColumns = len(strings.Fields(cols))
	}

	st.Fg = getColor(props, "color")
	st.Bg = getColor(props, "background")
	st.BorderColor = getColor(props, "borderColor")
	st.ScrollbarColor = getColor(props, "scrollbarColor")
	st.ScrollbarTrackColor = getColor(props, "scrollbarTrackColor")

	st.Text = Style{
		Fg:            st.Fg,
		Bg:            st.Bg,
		Bold:          getBool(props, "bold", false),
		Dim:           getBool(props, "dim", false),
		Italic:        getBool(props, "italic", false),
		Underline:     getBool(props, "underline", false),
		Strikethrough: getBool(props, "strikethrough", false),
		Inverse:       getBool(props, "inverse", false),
	}

	st.Top = getIntPtr(props, "top")
	st.Left = getIntPtr(props, "left")
	st.Right = getIntPtr(props, "right")
	st.Bottom = getIntPtr(props, "bottom")

	return st
}

func buildHandlers(props gox.Props) Handlers {
	h := Handlers{}
	if fn, ok := props["onFocus"].(func()); ok {
		h.OnFocus = fn
	}
	if fn, ok := props["onBlur"].(func()); ok {
		h.OnBlur = fn
	}
	if fn, ok := props["onClick"].(func()); ok {
		h.OnClick = fn
	}
	if fn, ok := props["onChange"].(func(string)); ok {
		h.OnChange = fn
	}
	if fn, ok := props["onSubmit"].(func(string)); ok {
		h.OnSubmit = fn
	}
	if fn, ok := props["onKeypress"].(func(KeyEvent) bool); ok {
		h.OnKeypress = fn
	}
	return h
}

// Prop extraction helpers. A prop may live flat on the bag or nested
// under a "style" map; flat wins.

func propValue(props gox.Props, key string) (any, bool) {
	if props == nil {
		return nil, false
	}
	if v, ok := props[key]; ok {
		return v, true
	}
	if styleMap, ok := props["style"].(map[string]any); ok {
		if v, ok := styleMap[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func getInt(props gox.Props, key string, defaultVal int) int {
	v, ok := propValue(props, key)
	if !ok {
		return defaultVal
	}
	switch i := v.(type) {
	case int:
		return i
	case float64:
		return int(i)
	default:
		return defaultVal
	}
}

func getIntPtr(props gox.Props, key string) *int {
	v, ok := propValue(props, key)
	if !ok {
		return nil
	}
	switch i := v.(type) {
	case int:
		out := i
		return &out
	case float64:
		out := int(i)
		return &out
	default:
		return nil
	}
}

func getBool(props gox.Props, key string, defaultVal bool) bool {
	v, ok := propValue(props, key)
	if !ok {
		return defaultVal
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultVal
}

func getString(props gox.Props, key, defaultVal string) string {
	v, ok := propValue(props, key)
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return defaultVal
}

func getStrings(props gox.Props, key string) []string {
	v, ok := propValue(props, key)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func getRune(props gox.Props, key string, defaultVal rune) rune {
	v, ok := propValue(props, key)
	if !ok {
		return defaultVal
	}
	switch r := v.(type) {
	case rune:
		return r
	case string:
		for _, c := range r {
			return c
		}
	}
	return defaultVal
}

func getColor(props gox.Props, key string) *RGBA {
	v, ok := propValue(props, key)
	if !ok {
		return nil
	}
	switch c := v.(type) {
	case string:
		return ParseColor(c)
	case RGBA:
		out := c
		return &out
	case *RGBA:
		return c
	default:
		return nil
	}
}

// getDim parses sizing props: absolute ints, "N%", "Nblocks", plain
// numeric strings, and "auto"/unset.
func getDim(props gox.Props, key string) Dim {
	v, ok := propValue(props, key)
	if !ok {
		return Auto
	}
	switch d := v.(type) {
	case int:
		return Cells(d)
	case float64:
		return Cells(int(d))
	case Dim:
		return d
	case string:
		return parseDimString(d)
	default:
		return Auto
	}
}

func parseDimString(s string) Dim {
	s = strings.TrimSpace(s)
	if s == "" || s == "auto" {
		return Auto
	}
	if strings.HasSuffix(s, "%") {
		if n, err := strconv.Atoi(strings.TrimSuffix(s, "%")); err == nil {
			return Percent(n)
		}
		return Auto
	}
	s = strings.TrimSuffix(s, "blocks")
	if n, err := strconv.Atoi(s); err == nil {
		return Cells(n)
	}
	return Auto
}

// getSpacing parses scalar | [v,h] | [t,r,b,l] spacing plus directional
// overrides like "paddingTop".
func getSpacing(props gox.Props, baseProp string) Spacing {
	sp := normalizeSpacing(firstProp(props, baseProp))

	if v, ok := propValue(props, baseProp+"Top"); ok {
		sp.Top = anyToInt(v)
	}
	if v, ok := propValue(props, baseProp+"Right"); ok {
		sp.Right = anyToInt(v)
	}
	if v, ok := propValue(props, baseProp+"Bottom"); ok {
		sp.Bottom = anyToInt(v)
	}
	if v, ok := propValue(props, baseProp+"Left"); ok {
		sp.Left = anyToInt(v)
	}
	return sp
}

func firstProp(props gox.Props, key string) any {
	v, _ := propValue(props, key)
	return v
}

func normalizeSpacing(value any) Spacing {
	if value == nil {
		return Spacing{}
	}
	switch v := value.(type) {
	case int:
		return Spacing{Top: v, Right: v, Bottom: v, Left: v}
	case float64:
		i := int(v)
		return Spacing{Top: i, Right: i, Bottom: i, Left: i}
	case Spacing:
		return v
	case []int:
		return spacingFromList(v)
	case []any:
		ints := make([]int, len(v))
		for i, item := range v {
			ints[i] = anyToInt(item)
		}
		return spacingFromList(ints)
	default:
		return Spacing{}
	}
}

func spacingFromList(v []int) Spacing {
	switch len(v) {
	case 2:
		return Spacing{Top: v[0], Right: v[1], Bottom: v[0], Left: v[1]}
	case 4:
		return Spacing{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}
	default:
		return Spacing{}
	}
}

func anyToInt(v any) int {
	switch i := v.(type) {
	case int:
		return i
	case float64:
		return int(i)
	default:
		return 0
	}
}

func getDirection(props gox.Props) FlexDirection {
	switch getString(props, "flexDirection", getString(props, "direction", "")) {
	case "row":
		return DirectionRow
	case "row-reverse":
		return DirectionRowReverse
	case "column-reverse":
		return DirectionColumnReverse
	default:
		return DirectionColumn
	}
}

func getJustify(props gox.Props) Justify {
	switch getString(props, "justifyContent", getString(props, "justify", "")) {
	case "center":
		return JustifyCenter
	case "end", "flex-end":
		return JustifyEnd
	case "space-between":
		return JustifySpaceBetween
	case "space-around":
		return JustifySpaceAround
	case "space-evenly":
		return JustifySpaceEvenly
	default:
		return JustifyStart
	}
}

func getAlign(props gox.Props) Align {
	switch getString(props, "alignItems", getString(props, "align", "")) {
	case "start", "flex-start":
		return AlignStart
	case "center":
		return AlignCenter
	case "end", "flex-end":
		return AlignEnd
	default:
		return AlignStretch
	}
}

func getTextAlign(props gox.Props) TextAlign {
	switch getString(props, "textAlign", "") {
	case "center":
		return TextCenter
	case "right":
		return TextRight
	default:
		return TextLeft
	}
}

func getPosition(props gox.Props) PositionMode {
	switch getString(props, "position", "") {
	case "absolute":
		return PositionAbsolute
	case "fixed":
		return PositionFixed
	default:
		return PositionStatic
	}
}

func getOverflow(props gox.Props) Overflow {
	switch getString(props, "overflow", "") {
	case "hidden":
		return OverflowHidden
	case "scroll":
		return OverflowScroll
	default:
		return OverflowVisible
	}
}

func getBorderStyle(border any) BorderStyle {
	if border == nil {
		return BorderNone
	}
	switch v := border.(type) {
	case bool:
		if v {
			return BorderSingle
		}
		return BorderNone
	case string:
		if bs, ok := borderStyleNames[v]; ok {
			return bs
		}
		return BorderNone
	case BorderStyle:
		return v
	default:
		return BorderNone
	}
}
