package sink

import (
	"encoding/json"

	"github.com/matzehuels/gatestack/pkg/circuit"
	"github.com/matzehuels/gatestack/pkg/circuit/layout"
	"github.com/matzehuels/gatestack/pkg/render/symbols"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	wireLabels []string
}

// WithJSONWireLabels records per-wire labels in the JSON output.
func WithJSONWireLabels(labels []string) JSONOption {
	return func(r *jsonRenderer) { r.wireLabels = labels }
}

// jsonElement is one positioned drawable in the JSON output. The bson tags
// match the canonical document format used by the share store.
type jsonElement struct {
	Kind   string `json:"kind" bson:"kind"`
	Col    int    `json:"col" bson:"col"`
	Row    int    `json:"row" bson:"row"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	Offset int    `json:"offset,omitempty" bson:"offset,omitempty"`
}

type jsonOutput struct {
	Wires    int           `json:"wires" bson:"wires"`
	Columns  int           `json:"columns" bson:"columns"`
	Labels   []string      `json:"labels,omitempty" bson:"labels,omitempty"`
	Elements []jsonElement `json:"elements" bson:"elements"`
}

// RenderJSON renders positioned elements as indented JSON. Element order
// matches the layout output: terminator first, then row-major by wire.
func RenderJSON(els []circuit.Element, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	ext := measure(els)
	out := jsonOutput{
		Wires:    ext.maxRow + 1,
		Columns:  ext.maxCol,
		Labels:   r.wireLabels,
		Elements: make([]jsonElement, 0, len(els)),
	}
	for _, el := range els {
		out.Elements = append(out.Elements, toJSONElement(el))
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONElement(el circuit.Element) jsonElement {
	col, row := el.Cell()
	je := jsonElement{Col: col, Row: row}
	switch s := el.(type) {
	case symbols.Box:
		je.Kind, je.Label = "gate", s.Label
	case symbols.Dot:
		je.Kind, je.Offset = "control", s.Offset
	case symbols.Open:
		je.Kind, je.Offset = "open-control", s.Offset
	case symbols.Oplus:
		je.Kind = "target"
	case symbols.Cross:
		je.Kind, je.Offset = "swap", s.Offset
	case symbols.Meter:
		je.Kind = "measure"
	case layout.Terminator:
		je.Kind = "terminator"
	default:
		je.Kind = "unknown"
	}
	return je
}
