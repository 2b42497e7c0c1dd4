// Package tuikit provides key name tables for the input decoder.
package tuikit

// Key names produced by Decode. Names follow the common terminal
// convention: lowercase words, modifier flags carried on the event.
const (
	KeyEnter     = "return"
	KeyTab       = "tab"
	KeyBackspace = "backspace"
	KeyEscape    = "escape"
	KeySpace     = "space"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyInsert    = "insert"
	KeyDelete    = "delete"
	KeyPageUp    = "pageup"
	KeyPageDown  = "pagedown"
)

// singleByteKeys maps named single-byte keys to their names.
var singleByteKeys = map[byte]string{
	0x09: KeyTab,
	0x0d: KeyEnter,
	0x0a: KeyEnter,
	0x7f: KeyBackspace,
	0x08: KeyBackspace,
	0x1b: KeyEscape,
	0x20: KeySpace,
}

// csiFinalKeys maps the final letter of a CSI sequence to a key name.
var csiFinalKeys = map[byte]string{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': "f1",
	'Q': "f2",
	'R': "f3",
	'S': "f4",
}

// csiTildeKeys maps the numeric parameter of "CSI n ~" sequences.
var csiTildeKeys = map[int]string{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	11: "f1",
	12: "f2",
	13: "f3",
	14: "f4",
	15: "f5",
	17: "f6",
	18: "f7",
	19: "f8",
	20: "f9",
	21: "f10",
	23: "f11",
	24: "f12",
}

// ss3Keys maps SS3 (ESC O x) final bytes, emitted by application-mode
// terminals for F1-F4 and arrows.
var ss3Keys = map[byte]string{
	'P': "f1",
	'Q': "f2",
	'R': "f3",
	'S': "f4",
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}
