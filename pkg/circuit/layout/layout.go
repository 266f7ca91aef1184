package layout

import (
	"errors"
	"fmt"

	"github.com/matzehuels/gatestack/pkg/circuit"
)

var (
	// ErrWireRange is returned by [Build] when an op's anchor, covering
	// interval or supplement wire falls outside [0, wires).
	ErrWireRange = errors.New("wire out of range")

	// ErrBadWidth is returned by [Build] when an op carries a negative
	// width. Widths are positive, or [circuit.WidthAuto] for resolution
	// at layout time.
	ErrBadWidth = errors.New("op width must be positive")
)

// Terminator is the zero-size element [Build] appends so that every wire's
// line extends to the circuit's final column even when the wire carries no
// gate. Sinks draw no symbol for it; only its cell matters.
type Terminator struct {
	Col, Row int
}

// Cell returns the terminator's (column, row) cell.
func (t Terminator) Cell() (col, row int) { return t.Col, t.Row }

// Config controls one Build invocation. The zero value means: infer the
// wire count from the ops, start at column 0 and row 0, no trailing wire
// column. Most callers want [DefaultConfig].
type Config struct {
	// Wires is the total wire count. Zero or negative means "infer":
	// one plus the maximum covering-range endpoint across all ops.
	Wires int

	// BaseColumn and BaseRow offset every emitted cell.
	BaseColumn int
	BaseRow    int

	// TrailingWire appends one extra column of bare wire after the last
	// gate column, so circuits end in open wire rather than a gate.
	TrailingWire bool

	// Terminator overrides the constructor for the trailing zero-size
	// element. Nil uses [Terminator].
	Terminator circuit.Ctor
}

// DefaultConfig returns the standard layout configuration: inferred wire
// count, columns starting at 1, rows at 0, and a trailing wire column.
func DefaultConfig() Config {
	return Config{BaseColumn: 1, TrailingWire: true}
}

// slot is one cell of a wire's track: either empty filler (keeping the
// wire bare at that column) or a positioned drawable. An explicit flag,
// not a nil sentinel, so that a legitimately nil-like element can never be
// confused with filler.
type slot struct {
	el     circuit.Element
	filled bool
}

// Build packs the given op groups onto wire tracks and returns the
// positioned drawables, time-ordered per wire: the terminator first, then
// every wire's drawables in column order, wire 0 upward.
//
// Groups are flattened in order; zero-value ("absent") ops are discarded.
// Ops are processed strictly in input order. On any validation error Build
// returns no output.
func Build(cfg Config, groups ...[]circuit.Op) ([]circuit.Element, error) {
	ops := flatten(groups)

	wires := cfg.Wires
	if wires <= 0 {
		wires = InferWires(ops)
	}
	if wires == 0 {
		// No wires declared and nothing to infer from.
		return []circuit.Element{}, nil
	}

	tracks := make([][]slot, wires)

	for i, op := range ops {
		lo, hi, err := Covering(op, wires)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		for _, s := range op.Supplements {
			if s.Wire < 0 || s.Wire >= wires {
				return nil, fmt.Errorf("op %d: supplement wire %d with %d wires declared: %w", i, s.Wire, wires, ErrWireRange)
			}
		}

		// Skyline: the furthest any wire in the span has been filled.
		skyline := 0
		for r := lo; r <= hi; r++ {
			if len(tracks[r]) > skyline {
				skyline = len(tracks[r])
			}
		}

		// Synchronization fill. Drawable-bearing wires (and every wire of
		// a barrier) level off at the skyline; pass-through wires get one
		// extra filler so their next gate lands behind this one.
		for r := lo; r <= hi; r++ {
			gap := skyline - len(tracks[r])
			if !op.Barrier && !op.DrawsOn(r) {
				gap++
			}
			for k := 0; k < gap; k++ {
				tracks[r] = append(tracks[r], slot{})
			}
		}

		if op.Barrier {
			continue
		}

		col := cfg.BaseColumn + skyline
		tracks[op.Anchor] = append(tracks[op.Anchor], slot{
			el:     op.Ctor(col, cfg.BaseRow+op.Anchor),
			filled: true,
		})
		for _, s := range op.Supplements {
			tracks[s.Wire] = append(tracks[s.Wire], slot{
				el:     s.Ctor(col, cfg.BaseRow+s.Wire),
				filled: true,
			})
		}
	}

	// Uniform termination: every wire ends at the same length.
	longest := 0
	for r := range tracks {
		if len(tracks[r]) > longest {
			longest = len(tracks[r])
		}
	}
	for r := range tracks {
		for len(tracks[r]) < longest+1 {
			tracks[r] = append(tracks[r], slot{})
		}
	}

	finalCol := cfg.BaseColumn + longest
	if cfg.TrailingWire {
		finalCol++
	}

	term := cfg.Terminator
	if term == nil {
		term = func(col, row int) circuit.Element { return Terminator{Col: col, Row: row} }
	}

	out := make([]circuit.Element, 0, countFilled(tracks)+1)
	out = append(out, term(finalCol, cfg.BaseRow+wires-1))
	for r := 0; r < wires; r++ {
		for _, s := range tracks[r] {
			if s.filled {
				out = append(out, s.el)
			}
		}
	}
	return out, nil
}

// Covering resolves an op's wire interval [lo, hi] against the declared
// wire count. Barriers with auto width span to the last wire; other auto
// widths resolve to the two-endpoint default of 2. Exposed for tooling
// (e.g. the precedence graph view) that needs the same resolution rule
// the engine applies.
func Covering(op circuit.Op, wires int) (lo, hi int, err error) {
	if op.Anchor < 0 || op.Anchor >= wires {
		return 0, 0, fmt.Errorf("anchor wire %d with %d wires declared: %w", op.Anchor, wires, ErrWireRange)
	}
	if op.Width < 0 {
		return 0, 0, fmt.Errorf("width %d: %w", op.Width, ErrBadWidth)
	}

	lo = op.Anchor
	switch {
	case op.Barrier && op.Width == circuit.WidthAuto:
		hi = wires - 1
	case op.Width == circuit.WidthAuto:
		hi = lo + 1
	default:
		hi = lo + op.Width - 1
	}
	if hi >= wires {
		return 0, 0, fmt.Errorf("wire %d with %d wires declared: %w", hi, wires, ErrWireRange)
	}
	return lo, hi, nil
}

// InferWires returns one plus the maximum covering-range endpoint across
// all ops, treating auto widths by their resolved minimum span. Build uses
// it when Config.Wires is unset; tooling can call it to learn the wire
// count a given op sequence implies.
func InferWires(ops []circuit.Op) int {
	wires := 0
	for _, op := range ops {
		hi := op.Anchor
		switch {
		case op.Barrier && op.Width == circuit.WidthAuto:
			// Open-ended: contributes only its anchor.
		case op.Width == circuit.WidthAuto:
			hi = op.Anchor + 1
		case op.Width > 0:
			hi = op.Anchor + op.Width - 1
		}
		for _, s := range op.Supplements {
			if s.Wire > hi {
				hi = s.Wire
			}
		}
		if hi+1 > wires {
			wires = hi + 1
		}
	}
	return wires
}

func flatten(groups [][]circuit.Op) []circuit.Op {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	ops := make([]circuit.Op, 0, n)
	for _, g := range groups {
		for _, op := range g {
			if op.IsZero() {
				continue
			}
			ops = append(ops, op)
		}
	}
	return ops
}

func countFilled(tracks [][]slot) int {
	n := 0
	for _, t := range tracks {
		for _, s := range t {
			if s.filled {
				n++
			}
		}
	}
	return n
}
