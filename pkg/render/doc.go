// Package render provides output generation for placed circuits.
//
// # Overview
//
// This package groups everything that turns placed elements into something
// a human can look at:
//
//   - Drawable symbols (in [symbols] subpackage)
//   - Output sinks for SVG, Unicode text, and JSON (in [sink] subpackage)
//   - The gate precedence view rendered through Graphviz (in [precedence]
//     subpackage)
//   - Shared sizing and escaping helpers (in [styles] subpackage)
//
// # Symbols
//
// The [symbols] subpackage defines the drawable vocabulary: labeled gate
// boxes, control dots, open controls, the ⊕ target, swap crosses, and
// meters. Each constructor returns a [circuit.Ctor] that the layout engine
// calls with the element's final cell.
//
// # Sinks
//
// The [sink] subpackage renders a placed element slice without re-running
// any layout logic:
//
//	svg := sink.RenderSVG(els, sink.WithWireLabels(labels))
//	txt := sink.RenderText(els)
//	js, err := sink.RenderJSON(els)
//
// # Precedence View
//
// The [precedence] subpackage derives the gate ordering graph (which gates
// must precede which) and renders it as DOT source or, via Graphviz, SVG.
package render
