// Package symbols provides the concrete drawable elements placed on
// circuit wires: labeled gate boxes, control markers, targets, swap
// crosses and measurement meters.
//
// Each factory returns a [circuit.Ctor] with styling (label, connector
// offset) already bound, so the layout engine only ever supplies the
// resolved (column, row) cell. Sinks type-switch on the element types in
// this package to decide what to draw.
//
// Connector offsets are in wires, signed: a marker with Offset +3 draws
// its vertical connector three wires downward, -3 upward. Offset 0 means
// the marker sits inside a span whose connector is owned elsewhere.
package symbols

import "github.com/matzehuels/gatestack/pkg/circuit"

// cell carries the resolved position shared by every symbol.
type cell struct {
	Col, Row int
}

// Cell returns the symbol's (column, row) cell.
func (c cell) Cell() (col, row int) { return c.Col, c.Row }

// Box is a labeled rectangular gate symbol, e.g. "H" or "R2".
type Box struct {
	cell
	Label string
}

// Dot is a filled control marker on a control wire.
type Dot struct {
	cell
	Offset int
}

// Open is an open (hollow) control marker, used on the intermediate and
// directional wires of multi-control gates.
type Open struct {
	cell
	Offset int
}

// Oplus is the circled-plus target of a NOT/CNOT gate.
type Oplus struct {
	cell
}

// Cross is one half of a SWAP gate.
type Cross struct {
	cell
	Offset int
}

// Meter is a measurement symbol.
type Meter struct {
	cell
}

// Gate returns a constructor for a labeled gate box.
func Gate(label string) circuit.Ctor {
	return func(col, row int) circuit.Element {
		return Box{cell: cell{Col: col, Row: row}, Label: label}
	}
}

// Control returns a constructor for a filled control dot carrying the
// given signed connector offset.
func Control(offset int) circuit.Ctor {
	return func(col, row int) circuit.Element {
		return Dot{cell: cell{Col: col, Row: row}, Offset: offset}
	}
}

// OpenControl returns a constructor for a hollow control marker carrying
// the given signed connector offset.
func OpenControl(offset int) circuit.Ctor {
	return func(col, row int) circuit.Element {
		return Open{cell: cell{Col: col, Row: row}, Offset: offset}
	}
}

// Not returns a constructor for the circled-plus CNOT target.
func Not() circuit.Ctor {
	return func(col, row int) circuit.Element {
		return Oplus{cell: cell{Col: col, Row: row}}
	}
}

// Swap returns a constructor for a swap cross carrying the given signed
// connector offset (zero for the passive half).
func Swap(offset int) circuit.Ctor {
	return func(col, row int) circuit.Element {
		return Cross{cell: cell{Col: col, Row: row}, Offset: offset}
	}
}

// Measure returns a constructor for a measurement meter.
func Measure() circuit.Ctor {
	return func(col, row int) circuit.Element {
		return Meter{cell: cell{Col: col, Row: row}}
	}
}
