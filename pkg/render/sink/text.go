package sink

import (
	"strings"

	"github.com/matzehuels/gatestack/pkg/circuit"
	"github.com/matzehuels/gatestack/pkg/render/symbols"
)

// cellWidth is the rune width of one column cell in text output.
const cellWidth = 5

// TextOption configures terminal text rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	wireLabels []string
}

// WithTextWireLabels prefixes each wire line with its label, e.g. "q0:".
func WithTextWireLabels(labels []string) TextOption {
	return func(r *textRenderer) { r.wireLabels = labels }
}

// RenderText renders positioned elements as a Unicode box-drawing diagram.
// Wires run left to right on every other text line; the lines in between
// carry the vertical connectors of multi-wire gates.
func RenderText(els []circuit.Element, opts ...TextOption) string {
	r := textRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	ext := measure(els)
	rows := 2*ext.maxRow + 1
	cols := (ext.maxCol + 1) * cellWidth

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	for w := 0; w <= ext.maxRow; w++ {
		for x := 0; x < cols; x++ {
			grid[2*w][x] = '─'
		}
	}

	// Connectors under the symbols.
	for _, el := range els {
		off := connectorOffset(el)
		if off == 0 {
			continue
		}
		col, row := el.Cell()
		x := col*cellWidth + cellWidth/2
		lo, hi := row, row+off
		if off < 0 {
			lo, hi = hi, lo
		}
		for w := lo + 1; w < hi; w++ {
			grid[2*w][x] = '┼'
		}
		for y := 2*lo + 1; y < 2*hi; y += 2 {
			grid[y][x] = '│'
		}
	}

	for _, el := range els {
		r.renderCell(grid, el)
	}

	var b strings.Builder
	labelWidth := 0
	for _, l := range r.wireLabels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}
	for y, line := range grid {
		if labelWidth > 0 {
			label := ""
			if y%2 == 0 && y/2 < len(r.wireLabels) {
				label = r.wireLabels[y/2]
			}
			b.WriteString(pad(label, labelWidth+1))
		}
		b.WriteString(strings.TrimRight(string(line), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *textRenderer) renderCell(grid [][]rune, el circuit.Element) {
	col, row := el.Cell()
	x := col * cellWidth
	y := 2 * row

	switch s := el.(type) {
	case symbols.Box:
		putCell(grid[y], x, "┤"+center(s.Label, cellWidth-2)+"├")
	case symbols.Dot:
		grid[y][x+cellWidth/2] = '●'
	case symbols.Open:
		grid[y][x+cellWidth/2] = '○'
	case symbols.Oplus:
		grid[y][x+cellWidth/2] = '⊕'
	case symbols.Cross:
		grid[y][x+cellWidth/2] = '╳'
	case symbols.Meter:
		putCell(grid[y], x, "┤"+center("M", cellWidth-2)+"├")
	}
}

func putCell(line []rune, x int, s string) {
	for i, r := range []rune(s) {
		if x+i < len(line) {
			line[x+i] = r
		}
	}
}

func center(s string, width int) string {
	if len(s) > width {
		s = s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
