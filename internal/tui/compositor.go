package tui

import (
	"math"
	"sort"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Layer is one rendered block positioned on the screen. X and Y locate
// the block's center as percentages of the viewport, matching the
// position values the state tree stores.
type Layer struct {
	Content string
	X       float64
	Y       float64
	Z       int
}

// Compose splices the layers onto the backdrop rows and returns the full
// frame. Layers are painted in Z order, so higher Z values end up on
// top. Splicing is ANSI-aware; styled backdrop rows survive having a
// styled block dropped into their middle.
func Compose(width, height int, backdrop []string, layers []Layer) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	canvas := make([]string, height)
	for i := range canvas {
		if i < len(backdrop) {
			canvas[i] = padRow(backdrop[i], width)
		} else {
			canvas[i] = strings.Repeat(" ", width)
		}
	}

	ordered := make([]Layer, len(layers))
	copy(ordered, layers)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Z < ordered[j].Z })

	for _, layer := range ordered {
		paint(canvas, width, height, layer)
	}
	return strings.Join(canvas, "\n")
}

func paint(canvas []string, width, height int, layer Layer) {
	if layer.Content == "" {
		return
	}
	lines := strings.Split(layer.Content, "\n")

	blockW := 0
	for _, line := range lines {
		if w := xansi.StringWidth(line); w > blockW {
			blockW = w
		}
	}
	if blockW == 0 {
		return
	}

	col := centered(layer.X, blockW, width)
	row := centered(layer.Y, len(lines), height)

	for i, line := range lines {
		y := row + i
		if y < 0 || y >= height {
			continue
		}
		canvas[y] = splice(canvas[y], width, col, line)
	}
}

// centered converts a center percentage into the top/left cell of a
// block of the given extent, clamped onto the screen.
func centered(percent float64, extent, span int) int {
	pos := int(math.Round(percent/100*float64(span) - float64(extent)/2))
	if pos+extent > span {
		pos = span - extent
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// splice overlays seg starting at column col of row, preserving the
// surrounding cells.
func splice(row string, width, col int, seg string) string {
	segW := xansi.StringWidth(seg)
	if segW == 0 {
		return row
	}
	if col+segW > width {
		seg = xansi.Truncate(seg, width-col, "")
		segW = xansi.StringWidth(seg)
		if segW == 0 {
			return row
		}
	}

	left := xansi.Truncate(row, col, "")
	if pad := col - xansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := xansi.TruncateLeft(row, col+segW, "")
	return left + seg + right
}

func padRow(row string, width int) string {
	w := xansi.StringWidth(row)
	switch {
	case w < width:
		return row + strings.Repeat(" ", width-w)
	case w > width:
		return xansi.Truncate(row, width, "")
	default:
		return row
	}
}
