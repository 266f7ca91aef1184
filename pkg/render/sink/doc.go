// Package sink renders positioned circuit elements to output formats.
//
// Sinks consume the element sequence produced by layout.Build and never
// feed anything back into the engine. Three formats are provided:
//
//   - [RenderSVG]: a standalone SVG document
//   - [RenderText]: a Unicode box-drawing diagram for terminals
//   - [RenderJSON]: the positioned elements as structured JSON
//
// All sinks are configured through functional options and are
// deterministic for a given input.
package sink
