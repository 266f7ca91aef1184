package precedence

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/gatestack/pkg/circuit"
	"github.com/matzehuels/gatestack/pkg/circuit/layout"
	"github.com/matzehuels/gatestack/pkg/render/symbols"
)

func singleOp(t *testing.T, w int) circuit.Op {
	t.Helper()
	ops, err := circuit.Gate(circuit.Single{On: circuit.Wire(w), Ctor: symbols.Gate("G")})
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}
	return ops[0]
}

func TestToDOT_Chain(t *testing.T) {
	// Three gates on the same wire form a chain op0 -> op1 -> op2,
	// without the transitive op0 -> op2 edge.
	ops := []circuit.Op{singleOp(t, 0), singleOp(t, 0), singleOp(t, 0)}

	dot, err := ToDOT(ops, 1)
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}

	for _, want := range []string{"op0 -> op1;", "op1 -> op2;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing edge %q", want)
		}
	}
	if strings.Contains(dot, "op0 -> op2;") {
		t.Error("ToDOT() contains transitive edge op0 -> op2")
	}
}

func TestToDOT_IndependentWires(t *testing.T) {
	ops := []circuit.Op{singleOp(t, 0), singleOp(t, 1)}

	dot, err := ToDOT(ops, 2)
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("ToDOT() produced edges for independent gates:\n%s", dot)
	}
}

func TestToDOT_SpanDeduplicates(t *testing.T) {
	// A two-wire op following two single gates shares both wires with its
	// predecessors but each edge appears once.
	link, err := circuit.Connect(circuit.Connected{
		From:     circuit.Wire(0),
		To:       circuit.Wire(1),
		At:       symbols.Control,
		Opposite: symbols.Not(),
	})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	ops := []circuit.Op{singleOp(t, 0), link[0]}

	dot, err := ToDOT(ops, 2)
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}
	if got := strings.Count(dot, "op0 -> op1;"); got != 1 {
		t.Errorf("edge op0 -> op1 appears %d times, want 1", got)
	}
}

func TestToDOT_OutOfRange(t *testing.T) {
	_, err := ToDOT([]circuit.Op{singleOp(t, 5)}, 2)
	if !errors.Is(err, layout.ErrWireRange) {
		t.Errorf("ToDOT() error = %v, want ErrWireRange", err)
	}
}

func TestNodeLabel(t *testing.T) {
	if got := nodeLabel(0, circuit.BarrierAt(1)); got != "0: barrier 1..end" {
		t.Errorf("nodeLabel(open barrier) = %q", got)
	}
	b, err := circuit.BarrierRange(0, 2)
	if err != nil {
		t.Fatalf("BarrierRange() error = %v", err)
	}
	if got := nodeLabel(1, b); got != "1: barrier 0..2" {
		t.Errorf("nodeLabel(ranged barrier) = %q", got)
	}
}
