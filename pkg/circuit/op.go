package circuit

// Element is a positioned drawable. The construction layer and the layout
// engine treat elements as opaque: they only ever create them through a
// [Ctor] and hand them to a sink. Cell exposes the resolved position so
// sinks and tests can read placements back without knowing the concrete
// symbol type.
type Element interface {
	Cell() (col, row int)
}

// Ctor builds a drawable for a resolved cell. Styling (labels, connector
// offsets, colors) is bound into the Ctor by the caller before layout;
// the engine only supplies coordinates.
type Ctor func(col, row int) Element

// Supplement is a secondary drawable attached to an Op on a wire other
// than its anchor, such as a control dot or the target half of a CNOT.
type Supplement struct {
	Wire int
	Ctor Ctor
}

// WidthAuto marks a span that is resolved later. For a barrier it resolves
// to anchor..lastWire; two-endpoint shapes resolve it to 2.
const WidthAuto = 0

// Op is one normalized gate instance: a drawable anchored at a wire,
// spanning Width wires downward, with optional supplements on other wires.
//
// Ops are value types created once by a construction shape and consumed
// exactly once by layout.Build; they are never mutated after construction.
// The zero Op is an "absent" marker and is discarded by the engine.
type Op struct {
	Anchor      int          // anchor wire index
	Width       int          // wire span; WidthAuto = resolved later
	Ctor        Ctor         // anchor drawable; nil for barriers
	Supplements []Supplement // secondary drawables, in placement order
	Barrier     bool         // synchronization-only op, draws nothing
}

// NewOp builds an Op from its parts. It checks shape only: range and
// distinctness validation happens in the construction shapes and in the
// layout engine, where the circuit's wire count is known.
func NewOp(anchor int, ctor Ctor, width int, supplements ...Supplement) Op {
	return Op{
		Anchor:      anchor,
		Width:       width,
		Ctor:        ctor,
		Supplements: supplements,
	}
}

// IsZero reports whether the Op is an absent marker: no drawable, no span,
// not a barrier. Zero Ops may appear in op groups (e.g. from conditional
// construction) and are skipped by the engine.
func (o Op) IsZero() bool {
	return o.Ctor == nil && !o.Barrier && o.Width == 0 && o.Anchor == 0 && len(o.Supplements) == 0
}

// DrawsOn reports whether the Op places a drawable on wire r: its anchor
// or any supplement wire. Barriers draw nowhere. The layout engine uses
// this to tell drawable-bearing wires from pass-through wires when it
// synchronizes a span.
func (o Op) DrawsOn(r int) bool {
	if o.Barrier {
		return false
	}
	if r == o.Anchor {
		return true
	}
	for _, s := range o.Supplements {
		if s.Wire == r {
			return true
		}
	}
	return false
}
