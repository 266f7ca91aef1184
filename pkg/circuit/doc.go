// Package circuit provides the operation model and construction layer for
// gatestack circuit diagrams.
//
// # Overview
//
// A circuit diagram is a set of horizontal wires (tracks, indexed from 0)
// carrying gate symbols. Callers describe gates declaratively; the layout
// engine (see the layout subpackage) assigns each drawable a discrete
// (column, row) cell so that multi-wire gates stay column-aligned across
// their whole span and no two gates on a wire overlap.
//
// The central type is [Op]: one normalized gate instance with an anchor wire,
// a wire span, and optional supplement drawables on other wires. Ops are
// built through three construction shapes:
//
//   - [Gate]: a one-wire gate, broadcast over any number of wires
//   - [Connected]: a two-endpoint gate such as CNOT or SWAP, pairing a
//     "from" and a "to" wire
//   - [Controlled]: a multi-control gate with any number of control wires
//     and one target
//
// Each shape accepts either a single wire or a list of wires per parameter
// (see [Wires]); lists of different lengths are broadcast to a common length
// by repeating their last element, and one Op is produced element-wise.
//
// # Drawables
//
// The construction layer and the engine never inspect what a gate looks
// like. They only require a [Ctor]: a capability that builds a drawable
// [Element] from a resolved (column, row) cell. Concrete symbols live in
// the render/symbols package; anything satisfying Element works.
//
// # Errors
//
// Construction is where caller input is validated: equal endpoints on a
// Connected shape, duplicate control/target wires on a Controlled shape,
// and inverted barrier ranges are rejected synchronously. Wire range checks
// against the circuit's wire count happen later, in the layout engine,
// because the wire count may be inferred from the ops themselves.
package circuit
