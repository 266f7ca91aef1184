// Package pkg provides the core libraries for Gatestack circuit diagrams.
//
// # Overview
//
// Gatestack turns declarative gate operations into quantum circuit diagrams,
// packing gates onto horizontal wire tracks as tightly as their time order
// allows. The pkg directory is organized into four main areas:
//
//  1. [circuit] - Domain logic (operations, gate shapes, track packing)
//  2. [render] - Output generation (symbols, SVG/text/JSON sinks, precedence view)
//  3. [circuitfile], [cache], [share] - Documents and storage
//  4. [pipeline] - Orchestration (parse → layout → render)
//
// # Architecture
//
// The typical data flow through Gatestack:
//
//	Circuit document (TOML/JSON)
//	         ↓
//	    [circuitfile] package (decode into gate statements)
//	         ↓
//	    [circuit] package (shape constructors → operations)
//	         ↓
//	    [circuit/layout] package (pack onto wire tracks)
//	         ↓
//	    [render/sink] package (SVG/text/JSON output)
//
// # Quick Start
//
// Build a Bell pair circuit and render it:
//
//	import (
//	    "github.com/matzehuels/gatestack/pkg/circuit"
//	    "github.com/matzehuels/gatestack/pkg/circuit/layout"
//	    "github.com/matzehuels/gatestack/pkg/render/sink"
//	    "github.com/matzehuels/gatestack/pkg/render/symbols"
//	)
//
//	// 1. Describe the gates
//	h, _ := circuit.Gate(circuit.Single{On: circuit.Wire(0), Ctor: symbols.Gate("H")})
//	cx, _ := circuit.Connect(circuit.Connected{
//	    From:     circuit.Wire(0),
//	    To:       circuit.Wire(1),
//	    At:       symbols.Control,
//	    Opposite: symbols.Not(),
//	})
//
//	// 2. Pack onto wire tracks
//	els, _ := layout.Build(layout.DefaultConfig(), h, cx)
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(els)
//
// # Main Packages
//
// [circuit] - Gate operations with broadcast wire lists and the shape
// constructors (single-wire, two-endpoint, multi-control, barrier).
//
// [circuit/layout] - The packing engine. Assigns each operation a column on
// its covering wires, keeping wires aligned and gates non-overlapping.
//
// [render] - Symbol constructors, the SVG/text/JSON sinks, and the Graphviz
// precedence view.
//
// [circuitfile] - TOML and JSON circuit documents with strict decoding.
//
// [cache], [share] - Artifact caching and published-circuit storage
// (memory, file, Redis, MongoDB).
//
// [pipeline] - The end-to-end runner shared by the CLI and the HTTP server.
package pkg
