// Package layout implements the track packing engine for gatestack.
//
// # Overview
//
// [Build] consumes an ordered sequence of circuit operations and assigns a
// discrete (column, row) cell to every drawable, subject to two invariants:
//
//   - Alignment: all drawables of one op land in the same column, across
//     the op's whole wire span.
//   - Non-overlap: two ops sharing a wire occupy strictly increasing
//     columns in input order.
//
// The engine is intentionally order-preserving: ops are processed strictly
// in input order with no dependency reordering, so results stay predictable
// for callers. It is also a pure function: identical input always yields an
// element-wise identical output, with no randomness or map-iteration
// dependence.
//
// # Algorithm
//
// Each wire owns a growable track of slots; a slot is either empty filler
// or a positioned drawable. For each op the engine computes the skyline of
// the op's covering wire interval (the furthest any of those wires has been
// filled), pads every wire of the interval up to the skyline and places the
// op's drawables there. Pass-through wires (spanned but drawn-on-nothing)
// receive one extra filler slot so the next gate on them lands one column
// behind the spanning gate. A final pass pads every wire to a common length
// and emits a zero-size [Terminator] so trailing wires render through to
// the last column.
//
// Barriers are synchronization-only ops: they level their wire range's
// tracks and draw nothing.
//
// # Failure modes
//
// All failures are synchronous input errors: an anchor or covering-interval
// endpoint outside the declared wire range, or a barrier range that is
// inverted or exceeds the wire count. No partial output is returned.
package layout
