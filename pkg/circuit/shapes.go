package circuit

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoWires is returned when a shape parameter holds no wires.
	ErrNoWires = errors.New("shape requires at least one wire")

	// ErrEqualEndpoints is returned by [Connect] when a broadcast pair has
	// identical from and to wires. A two-endpoint gate needs two wires.
	ErrEqualEndpoints = errors.New("endpoints must differ")

	// ErrDuplicateWire is returned by [Control] when the control wires and
	// target of one instance are not pairwise distinct.
	ErrDuplicateWire = errors.New("control and target wires must be pairwise distinct")

	// ErrInvertedRange is returned by [BarrierRange] when end < start.
	ErrInvertedRange = errors.New("barrier end precedes start")

	// ErrMissingCtor is returned when a shape lacks a drawable constructor.
	ErrMissingCtor = errors.New("shape requires a drawable constructor")
)

// Single configures the single-wire shape: one gate symbol per wire,
// broadcast over On. There are deliberately no other knobs; anything else
// a caller might want to attach (controls, spans) belongs to the other
// shapes, and the circuitfile parser rejects stray keys with a descriptive
// error before this struct is ever built.
type Single struct {
	On   Wires
	Ctor Ctor
}

// Gate produces one width-1, no-supplement Op per wire in s.On.
func Gate(s Single) ([]Op, error) {
	if s.On.IsEmpty() {
		return nil, fmt.Errorf("single-wire shape: %w", ErrNoWires)
	}
	if s.Ctor == nil {
		return nil, fmt.Errorf("single-wire shape: %w", ErrMissingCtor)
	}
	ops := make([]Op, 0, s.On.Len())
	for i := 0; i < s.On.Len(); i++ {
		ops = append(ops, NewOp(s.On.At(i), s.Ctor, 1))
	}
	return ops, nil
}

// Connected configures the two-endpoint shape: a gate linking a From wire
// to a To wire, such as CNOT, CZ or SWAP. From and To broadcast pairwise.
//
// At builds the drawable that owns the connecting line, given the signed
// offset from its own wire to the opposite endpoint (negative when the
// connector runs upward). Opposite builds the drawable at the other end.
type Connected struct {
	From, To Wires
	At       func(offset int) Ctor
	Opposite Ctor
}

// Connect produces one Op per broadcast (from, to) pair. Each Op anchors at
// the lower endpoint and spans |to-from|+1 wires; the From-side drawable
// carries the signed connector offset, the To-side drawable rides along as
// a supplement. A pair with from == to is rejected.
func Connect(c Connected) ([]Op, error) {
	if c.From.IsEmpty() || c.To.IsEmpty() {
		return nil, fmt.Errorf("two-endpoint shape: %w", ErrNoWires)
	}
	if c.At == nil || c.Opposite == nil {
		return nil, fmt.Errorf("two-endpoint shape: %w", ErrMissingCtor)
	}
	n := broadcastLen(c.From, c.To)
	ops := make([]Op, 0, n)
	for i := 0; i < n; i++ {
		from, to := c.From.At(i), c.To.At(i)
		if from == to {
			return nil, fmt.Errorf("two-endpoint shape: wire %d: %w", from, ErrEqualEndpoints)
		}
		span := to - from
		if span < 0 {
			span = -span
		}
		if from < to {
			ops = append(ops, NewOp(from, c.At(to-from), span+1, Supplement{Wire: to, Ctor: c.Opposite}))
		} else {
			ops = append(ops, NewOp(to, c.Opposite, span+1, Supplement{Wire: from, Ctor: c.At(to - from)}))
		}
	}
	return ops, nil
}

// Controlled configures the multi-control shape: one target gate plus any
// number of control wires. Every Controls entry and Target broadcast to a
// common length; one Op is produced per instance.
//
// Gate builds the target drawable. Mark builds a control marker given its
// signed connector offset; the marker at the covering range's directional
// endpoint carries the full range span (positive when the anchor is a
// control, negative when the anchor is the target), all other markers
// carry offset 0.
type Controlled struct {
	Controls []Wires
	Target   Wires
	Gate     Ctor
	Mark     func(offset int) Ctor
}

// Control produces one Op per broadcast instance of c.
//
// Per instance, the control wires and target must be pairwise distinct.
// The Op anchors at the lowest wire of the covering range. When the target
// is that lowest wire, the anchor drawable is the target gate and the
// highest control's marker carries offset -(span) so the connector is drawn
// upward. Otherwise the anchor is a control marker carrying +span, and the
// target gate rides as a supplement.
//
// When the target sits strictly between controls, the highest control wire
// receives no drawable of its own: the connector implied by the anchor
// marker's span already covers it. Callers relying on a visible dot at
// that wire should place it explicitly.
func Control(c Controlled) ([]Op, error) {
	if len(c.Controls) == 0 || c.Target.IsEmpty() {
		return nil, fmt.Errorf("multi-control shape: %w", ErrNoWires)
	}
	for _, ctl := range c.Controls {
		if ctl.IsEmpty() {
			return nil, fmt.Errorf("multi-control shape: %w", ErrNoWires)
		}
	}
	if c.Gate == nil || c.Mark == nil {
		return nil, fmt.Errorf("multi-control shape: %w", ErrMissingCtor)
	}

	all := append(slices.Clone(c.Controls), c.Target)
	n := broadcastLen(all...)

	ops := make([]Op, 0, n)
	for i := 0; i < n; i++ {
		target := c.Target.At(i)
		controls := make([]int, 0, len(c.Controls))
		for _, ctl := range c.Controls {
			controls = append(controls, ctl.At(i))
		}

		covered := append(slices.Clone(controls), target)
		slices.Sort(covered)
		for j := 1; j < len(covered); j++ {
			if covered[j] == covered[j-1] {
				return nil, fmt.Errorf("multi-control shape: wire %d used twice: %w", covered[j], ErrDuplicateWire)
			}
		}

		lo, hi := covered[0], covered[len(covered)-1]
		span := hi - lo

		var op Op
		if target == lo {
			// Target on top: anchor is the gate itself, the highest
			// control owns the upward connector.
			supps := make([]Supplement, 0, len(covered)-1)
			for _, w := range covered[1 : len(covered)-1] {
				supps = append(supps, Supplement{Wire: w, Ctor: c.Mark(0)})
			}
			supps = append(supps, Supplement{Wire: hi, Ctor: c.Mark(-span)})
			op = NewOp(lo, c.Gate, span+1, supps...)
		} else {
			// Anchor control owns the downward connector. If the target
			// sits strictly between controls, the highest control gets
			// no drawable: the span connector already reaches it.
			supps := make([]Supplement, 0, len(covered)-1)
			for _, w := range covered[1:] {
				switch {
				case w == target:
					supps = append(supps, Supplement{Wire: w, Ctor: c.Gate})
				case w < hi:
					supps = append(supps, Supplement{Wire: w, Ctor: c.Mark(0)})
				}
			}
			op = NewOp(lo, c.Mark(span), span+1, supps...)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// BarrierAt returns an open-ended barrier: a synchronization-only op
// anchored at wire start and spanning to the circuit's last wire, resolved
// by the layout engine once the wire count is known.
func BarrierAt(start int) Op {
	return Op{Anchor: start, Width: WidthAuto, Barrier: true}
}

// BarrierRange returns a barrier spanning wires start..end inclusive.
func BarrierRange(start, end int) (Op, error) {
	if end < start {
		return Op{}, fmt.Errorf("barrier [%d, %d]: %w", start, end, ErrInvertedRange)
	}
	return Op{Anchor: start, Width: end - start + 1, Barrier: true}, nil
}
