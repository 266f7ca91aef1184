// Package precedence renders the column-precedence graph of an op
// sequence: which earlier op forces which later op into a new column.
//
// Two ops are linked when they cover a common wire and no op between them
// covers that wire. The graph is a debugging aid for understanding why the
// packing engine placed a gate where it did; it is derived purely from the
// ops and mirrors the engine's covering-interval resolution via
// [layout.Covering].
package precedence

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gatestack/pkg/circuit"
	"github.com/matzehuels/gatestack/pkg/circuit/layout"
)

// ToDOT returns the precedence graph of ops in Graphviz DOT format.
// The wires count must cover every op; pass [layout.InferWires] for the
// engine's inferred default.
func ToDOT(ops []circuit.Op, wires int) (string, error) {
	type edge struct{ from, to int }
	seen := make(map[edge]bool)
	var edges []edge

	last := make([]int, wires) // wire -> index of last op covering it, -1 = none
	for i := range last {
		last[i] = -1
	}

	for i, op := range ops {
		lo, hi, err := layout.Covering(op, wires)
		if err != nil {
			return "", fmt.Errorf("op %d: %w", i, err)
		}
		for w := lo; w <= hi; w++ {
			if p := last[w]; p >= 0 {
				e := edge{from: p, to: i}
				if !seen[e] {
					seen[e] = true
					edges = append(edges, e)
				}
			}
			last[w] = i
		}
	}

	var b strings.Builder
	b.WriteString("digraph precedence {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, fontname=\"monospace\"];\n")
	for i, op := range ops {
		fmt.Fprintf(&b, "  op%d [label=\"%s\"];\n", i, nodeLabel(i, op))
	}
	for _, e := range edges {
		fmt.Fprintf(&b, "  op%d -> op%d;\n", e.from, e.to)
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// RenderSVG renders the precedence graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, ops []circuit.Op, wires int) ([]byte, error) {
	dot, err := ToDOT(ops, wires)
	if err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

func nodeLabel(i int, op circuit.Op) string {
	if op.Barrier {
		if op.Width == circuit.WidthAuto {
			return fmt.Sprintf("%d: barrier %d..end", i, op.Anchor)
		}
		return fmt.Sprintf("%d: barrier %d..%d", i, op.Anchor, op.Anchor+op.Width-1)
	}
	if len(op.Supplements) == 0 {
		return fmt.Sprintf("%d: wire %d", i, op.Anchor)
	}
	wires := make([]string, 0, len(op.Supplements))
	for _, s := range op.Supplements {
		wires = append(wires, fmt.Sprintf("%d", s.Wire))
	}
	return fmt.Sprintf("%d: wire %d +%s", i, op.Anchor, strings.Join(wires, ","))
}
