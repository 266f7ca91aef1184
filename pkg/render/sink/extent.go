package sink

import (
	"github.com/matzehuels/gatestack/pkg/circuit"
	"github.com/matzehuels/gatestack/pkg/render/symbols"
)

// extent is the cell bounding box of an element sequence. Rows are assumed
// to start at 0: the layout engine emits a terminator on the last wire, so
// maxRow always reflects the real wire count, while wires above the first
// gate simply render as bare lines.
type extent struct {
	maxCol int
	maxRow int
}

func measure(els []circuit.Element) extent {
	var e extent
	for _, el := range els {
		col, row := el.Cell()
		if col > e.maxCol {
			e.maxCol = col
		}
		if row > e.maxRow {
			e.maxRow = row
		}
	}
	return e
}

// connectorOffset returns the signed vertical connector span carried by an
// element, or 0 when it has none.
func connectorOffset(el circuit.Element) int {
	switch s := el.(type) {
	case symbols.Dot:
		return s.Offset
	case symbols.Open:
		return s.Offset
	case symbols.Cross:
		return s.Offset
	}
	return 0
}
