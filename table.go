// Package tuikit provides table measurement and painting. Tables size
// each column to its widest cell across all rows, so every row shares
// one canonical set of column widths.
package tuikit

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// tableRows views a table node as rows of cells. Each child is a row;
// each row's children are cells. A row with direct text and no children
// becomes a single spanning cell.
func tableRows(n *Node) [][]*Node {
	var rows [][]*Node
	for _, row := range n.Children {
		cells := row.Children
		if len(cells) == 0 {
			cells = []*Node{row}
		}
		rows = append(rows, cells)
	}
	return rows
}

func tableCellText(cell *Node) string {
	if cell.Text != "" {
		return cell.Text
	}
	var sb strings.Builder
	for _, c := range cell.Children {
		sb.WriteString(tableCellText(c))
	}
	return sb.String()
}

// tableColumnWidths computes the canonical per-column widths: the widest
// cell line in each column, across every row.
func tableColumnWidths(rows [][]*Node) []int {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]int, cols)
	for _, row := range rows {
		for j, cell := range row {
			for _, line := range strings.Split(tableCellText(cell), "\n") {
				if w := runewidth.StringWidth(line); w > widths[j] {
					widths[j] = w
				}
			}
		}
	}
	return widths
}

func tableRowHeights(rows [][]*Node) []int {
	heights := make([]int, len(rows))
	for i, row := range rows {
		h := 1
		for _, cell := range row {
			if lines := strings.Count(tableCellText(cell), "\n") + 1; lines > h {
				h = lines
			}
		}
		heights[i] = h
	}
	return heights
}

// measureTable returns the border-box size of the full cell grid: one
// separator column between and around columns, one separator row
// between and around rows.
func measureTable(n *Node) (int, int) {
	rows := tableRows(n)
	if len(rows) == 0 {
		return 2, 2
	}
	widths := tableColumnWidths(rows)
	heights := tableRowHeights(rows)

	w := 1
	for _, cw := range widths {
		w += cw + 2 + 1 // cell padding of one space each side, then separator
	}
	h := 1
	for _, rh := range heights {
		h += rh + 1
	}
	return w, h
}

// paintTable draws the grid and cell contents. The first row is the
// header and paints bold. Coordinates are pre-offset by the caller.
func paintTable(b *ScreenBuffer, n *Node, rect Rect, base Style, clip *ClipRect) {
	rows := tableRows(n)
	if len(rows) == 0 {
		return
	}
	widths := tableColumnWidths(rows)
	heights := tableRowHeights(rows)

	borderStyle := n.Style.Border
	if borderStyle == BorderNone {
		borderStyle = BorderSingle
	}
	chars := BorderCharSets[borderStyle]
	lineStyle := base
	if n.Style.BorderColor != nil {
		lineStyle.Fg = n.Style.BorderColor
	}

	// Column x positions of the vertical separators.
	xs := make([]int, 0, len(widths)+1)
	x := rect.X
	xs = append(xs, x)
	for _, cw := range widths {
		x += cw + 2 + 1
		xs = append(xs, x)
	}
	// Row y positions of the horizontal separators.
	ys := make([]int, 0, len(heights)+1)
	y := rect.Y
	ys = append(ys, y)
	for _, rh := range heights {
		y += rh + 1
		ys = append(ys, y)
	}

	right := xs[len(xs)-1]
	bottom := ys[len(ys)-1]

	// Grid lines: horizontals, then verticals, junctions last.
	for _, gy := range ys {
		for gx := rect.X; gx <= right; gx++ {
			b.WriteCharMerge(gx, gy, chars.Horizontal, lineStyle, clip)
		}
	}
	for _, gx := range xs {
		for gy := rect.Y; gy <= bottom; gy++ {
			b.WriteCharMerge(gx, gy, chars.Vertical, lineStyle, clip)
		}
	}
	for _, gy := range ys {
		for _, gx := range xs {
			b.WriteCharMerge(gx, gy, chars.Junction, lineStyle, clip)
		}
	}

	// Corners get the dedicated glyphs.
	b.WriteCharMerge(rect.X, rect.Y, chars.TopLeft, lineStyle, clip)
	b.WriteCharMerge(right, rect.Y, chars.TopRight, lineStyle, clip)
	b.WriteCharMerge(rect.X, bottom, chars.BottomLeft, lineStyle, clip)
	b.WriteCharMerge(right, bottom, chars.BottomRight, lineStyle, clip)

	// Cell contents.
	for i, row := range rows {
		cellY := ys[i] + 1
		for j, cell := range row {
			if j >= len(widths) {
				break
			}
			style := base
			if i == 0 {
				style.Bold = true
			}
			if cell.Style.Fg != nil {
				style.Fg = cell.Style.Fg
			}
			if cell.Style.Bg != nil {
				style.Bg = cell.Style.Bg
			}
			lines := strings.Split(tableCellText(cell), "\n")
			for li, line := range lines {
				if li >= heights[i] {
					break
				}
				b.WriteText(xs[j]+2, cellY+li, line, style, clip)
			}
		}
	}
}
