// Package templates composes standard circuit op sequences from the public
// construction shapes. Templates are ordinary consumers of the circuit and
// layout contracts: everything here could be rebuilt outside the module.
package templates

import (
	"fmt"

	"github.com/matzehuels/gatestack/pkg/circuit"
	"github.com/matzehuels/gatestack/pkg/render/symbols"
)

// GraphState returns the op groups preparing a graph state on n wires: a
// Hadamard on every wire, then a CZ per edge. Edges are (a, b) wire pairs.
func GraphState(n int, edges [][2]int) ([][]circuit.Op, error) {
	if n < 1 {
		return nil, fmt.Errorf("graph state needs at least 1 wire, got %d", n)
	}

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	h, err := circuit.Gate(circuit.Single{On: circuit.WireList(all...), Ctor: symbols.Gate("H")})
	if err != nil {
		return nil, err
	}

	groups := [][]circuit.Op{h}
	for _, e := range edges {
		a, b := e[0], e[1]
		if a < 0 || a >= n || b < 0 || b >= n {
			return nil, fmt.Errorf("edge (%d, %d) outside %d wires", a, b, n)
		}
		cz, err := circuit.Connect(circuit.Connected{
			From:     circuit.Wire(a),
			To:       circuit.Wire(b),
			At:       symbols.Control,
			Opposite: symbols.Control(0),
		})
		if err != nil {
			return nil, fmt.Errorf("edge (%d, %d): %w", a, b, err)
		}
		groups = append(groups, cz)
	}
	return groups, nil
}

// QFT returns the op groups of the quantum Fourier transform on n wires:
// per wire a Hadamard followed by its controlled-phase ladder, then the
// reversing swaps.
func QFT(n int) ([][]circuit.Op, error) {
	if n < 1 {
		return nil, fmt.Errorf("QFT needs at least 1 wire, got %d", n)
	}

	var groups [][]circuit.Op
	for i := 0; i < n; i++ {
		h, err := circuit.Gate(circuit.Single{On: circuit.Wire(i), Ctor: symbols.Gate("H")})
		if err != nil {
			return nil, err
		}
		groups = append(groups, h)

		for j := i + 1; j < n; j++ {
			phase, err := circuit.Control(circuit.Controlled{
				Controls: []circuit.Wires{circuit.Wire(j)},
				Target:   circuit.Wire(i),
				Gate:     symbols.Gate(fmt.Sprintf("R%d", j-i+1)),
				Mark:     symbols.Control,
			})
			if err != nil {
				return nil, fmt.Errorf("phase %d->%d: %w", j, i, err)
			}
			groups = append(groups, phase)
		}
	}

	for i := 0; i < n/2; i++ {
		swap, err := circuit.Connect(circuit.Connected{
			From:     circuit.Wire(i),
			To:       circuit.Wire(n - 1 - i),
			At:       symbols.Swap,
			Opposite: symbols.Swap(0),
		})
		if err != nil {
			return nil, fmt.Errorf("swap %d<->%d: %w", i, n-1-i, err)
		}
		groups = append(groups, swap)
	}
	return groups, nil
}
