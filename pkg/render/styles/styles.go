// Package styles provides shared sizing and escaping helpers for the
// render sinks.
package styles

import (
	"bytes"
	"encoding/xml"
)

const (
	fontCharWidth = 0.62
	fontSizeMin   = 8.0
	fontSizeMax   = 15.0
	boxMinRatio   = 0.58
	boxPadding    = 10.0
)

// BoxWidth returns the width of a gate box for the given label, growing
// past the minimum when the label would not fit.
func BoxWidth(label string, colPitch float64) float64 {
	w := colPitch * boxMinRatio
	needed := float64(len(label))*fontSizeMax*fontCharWidth + boxPadding
	if needed > w {
		w = needed
	}
	return w
}

// FontSize returns a font size that fits the label inside a box of the
// given width, clamped to a readable range.
func FontSize(label string, boxWidth float64) float64 {
	n := len(label)
	if n < 1 {
		n = 1
	}
	size := (boxWidth - boxPadding) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, size))
}

// EscapeXML escapes s for embedding in SVG text content.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
