package editor

import "github.com/rivo/uniseg"

// TabWidth is the fixed tab width used for visual column math (§4.1, §9:
// "Tab width is fixed at 4 for column computation").
const TabWidth = 4

// visualColumn returns the visual column reached after displaying the
// first byteCol bytes of line, expanding tabs to the next multiple of
// TabWidth and measuring every other grapheme cluster by its terminal
// display width (via uniseg, so combining marks and wide CJK characters
// count correctly instead of being assumed single-width).
func visualColumn(line string, byteCol int) int {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	head := line[:byteCol]

	col := 0
	state := -1
	for len(head) > 0 {
		var cluster string
		var width int
		cluster, head, width, state = uniseg.FirstGraphemeClusterInString(head, state)
		if cluster == "\t" {
			col = ((col / TabWidth) + 1) * TabWidth
			continue
		}
		if width <= 0 {
			width = 1
		}
		col += width
	}
	return col
}

// byteColumnForVisual returns the first byte column within line whose
// visual column (per visualColumn) reaches target, or the line's length
// when no column does; a wide cluster or tab that straddles target puts the
// result past it. Used to restore a preferred column on vertical motion.
func byteColumnForVisual(line string, target int) int {
	col := 0
	state := -1
	rest := line
	byteCol := 0
	for len(rest) > 0 {
		if col >= target {
			break
		}
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "\t" {
			col = ((col / TabWidth) + 1) * TabWidth
		} else {
			if width <= 0 {
				width = 1
			}
			col += width
		}
		byteCol += len(cluster)
	}
	return byteCol
}
