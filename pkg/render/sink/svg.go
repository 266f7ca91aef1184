package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/gatestack/pkg/circuit"
	"github.com/matzehuels/gatestack/pkg/circuit/layout"
	"github.com/matzehuels/gatestack/pkg/render/symbols"
	"github.com/matzehuels/gatestack/pkg/render/styles"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	colPitch   float64
	rowPitch   float64
	margin     float64
	wireLabels []string
	stroke     string
}

// WithPitch sets the horizontal and vertical cell pitch in user units.
func WithPitch(col, row float64) SVGOption {
	return func(r *svgRenderer) { r.colPitch, r.rowPitch = col, row }
}

// WithWireLabels draws the given labels at the left end of each wire,
// top wire first. Missing labels leave the wire unlabeled.
func WithWireLabels(labels []string) SVGOption {
	return func(r *svgRenderer) { r.wireLabels = labels }
}

// WithStroke sets the stroke color for wires and symbols.
func WithStroke(color string) SVGOption {
	return func(r *svgRenderer) { r.stroke = color }
}

// RenderSVG renders positioned elements as a standalone SVG document.
func RenderSVG(els []circuit.Element, opts ...SVGOption) []byte {
	r := svgRenderer{colPitch: 48, rowPitch: 44, margin: 28, stroke: "#1a1a1a"}
	for _, opt := range opts {
		opt(&r)
	}

	ext := measure(els)
	width := r.margin*2 + float64(ext.maxCol)*r.colPitch
	height := r.margin*2 + float64(ext.maxRow)*r.rowPitch

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <g stroke="%s" fill="none" stroke-width="1.5" font-family="monospace">`+"\n", r.stroke)

	// Wires first so symbols cover them.
	for row := 0; row <= ext.maxRow; row++ {
		y := r.y(row)
		fmt.Fprintf(&buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			r.margin*0.5, y, r.x(ext.maxCol), y)
		if row < len(r.wireLabels) && r.wireLabels[row] != "" {
			fmt.Fprintf(&buf, `    <text x="%.1f" y="%.1f" stroke="none" fill="%s" font-size="11" text-anchor="end">%s</text>`+"\n",
				r.margin*0.45, y-4, r.stroke, styles.EscapeXML(r.wireLabels[row]))
		}
	}

	// Connectors next, then symbols on top.
	for _, el := range els {
		if off := connectorOffset(el); off != 0 {
			col, row := el.Cell()
			fmt.Fprintf(&buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
				r.x(col), r.y(row), r.x(col), r.y(row+off))
		}
	}
	for _, el := range els {
		r.renderSymbol(&buf, el)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) x(col int) float64 { return r.margin + float64(col)*r.colPitch }
func (r *svgRenderer) y(row int) float64 { return r.margin + float64(row)*r.rowPitch }

func (r *svgRenderer) renderSymbol(buf *bytes.Buffer, el circuit.Element) {
	col, row := el.Cell()
	x, y := r.x(col), r.y(row)

	switch s := el.(type) {
	case symbols.Box:
		w := styles.BoxWidth(s.Label, r.colPitch)
		h := r.rowPitch * 0.62
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white"/>`+"\n",
			x-w/2, y-h/2, w, h)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" stroke="none" fill="%s" font-size="%.0f" text-anchor="middle">%s</text>`+"\n",
			x, y+4, r.stroke, styles.FontSize(s.Label, w), styles.EscapeXML(s.Label))
	case symbols.Dot:
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>`+"\n", x, y, r.stroke)
	case symbols.Open:
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="4.5" fill="white"/>`+"\n", x, y)
	case symbols.Oplus:
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="8" fill="white"/>`+"\n", x, y)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x-8, y, x+8, y)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x, y-8, x, y+8)
	case symbols.Cross:
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x-6, y-6, x+6, y+6)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x-6, y+6, x+6, y-6)
	case symbols.Meter:
		w, h := r.colPitch*0.58, r.rowPitch*0.62
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white"/>`+"\n",
			x-w/2, y-h/2, w, h)
		fmt.Fprintf(buf, `    <path d="M %.1f %.1f A %.1f %.1f 0 0 1 %.1f %.1f"/>`+"\n",
			x-w*0.32, y+h*0.22, w*0.32, h*0.4, x+w*0.32, y+h*0.22)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			x, y+h*0.22, x+w*0.26, y-h*0.26)
	case layout.Terminator:
		// Zero-size: extends the wire, draws nothing.
	}
}
