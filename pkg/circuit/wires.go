package circuit

// Wires is a tagged wire-index value: either a single wire or a list of
// wires. Construction shapes accept Wires wherever a parameter may be
// broadcast, replacing ad hoc "scalar or slice" runtime checks with an
// explicit two-case value.
//
// The zero value is an empty list and is rejected by the shapes.
type Wires struct {
	list []int
}

// Wire returns a Wires holding a single wire index.
func Wire(w int) Wires { return Wires{list: []int{w}} }

// WireList returns a Wires holding the given wire indices.
// The slice is copied; later mutation of ws does not affect the result.
func WireList(ws ...int) Wires {
	return Wires{list: append([]int(nil), ws...)}
}

// Len returns the number of wires held.
func (w Wires) Len() int { return len(w.list) }

// IsEmpty reports whether no wires are held.
func (w Wires) IsEmpty() bool { return len(w.list) == 0 }

// At returns the wire at index i, clamping to the last element when i runs
// past the end. The clamping is what implements the broadcast rule: shorter
// lists behave as if extended by repeating their last element.
func (w Wires) At(i int) int {
	if i >= len(w.list) {
		return w.list[len(w.list)-1]
	}
	return w.list[i]
}

// broadcastLen returns the common broadcast length of the given wire values:
// the maximum Len across all of them. Empty values contribute nothing.
func broadcastLen(vs ...Wires) int {
	n := 0
	for _, v := range vs {
		if v.Len() > n {
			n = v.Len()
		}
	}
	return n
}
