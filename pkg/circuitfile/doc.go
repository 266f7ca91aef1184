// Package circuitfile reads and writes declarative circuit documents.
//
// A document lists gate statements in time order; the package turns them
// into construction-layer op groups ready for layout.Build. Two encodings
// are supported, selected by file extension: TOML for hand-written files
// and JSON for API payloads. Both are parsed strictly: unknown keys are
// rejected with a descriptive error rather than silently ignored.
//
// # Format
//
//	wires = 3
//	labels = ["q0", "q1", "q2"]
//
//	[[ops]]
//	gate = "H"
//	on = [0, 1, 2]
//
//	[[ops]]
//	gate = "CNOT"
//	from = [0]
//	to = [1]
//
//	[[ops]]
//	gate = "Z"
//	controls = [0, 1]
//	target = [2]
//
//	[[ops]]
//	barrier = true
//	from = [0]
//
// Wire fields hold lists; construction shapes broadcast lists of unequal
// length by repeating their last element. A statement's kind is determined
// by which fields it sets: on (single-wire), from/to (two-endpoint),
// controls/target (multi-control), or barrier.
package circuitfile
