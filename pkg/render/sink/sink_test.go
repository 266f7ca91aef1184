package sink_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/gatestack/pkg/circuit"
	"github.com/matzehuels/gatestack/pkg/circuit/layout"
	"github.com/matzehuels/gatestack/pkg/render/sink"
	"github.com/matzehuels/gatestack/pkg/render/symbols"
)

// bellPair lays out the standard two-wire example: H then CNOT.
func bellPair(t *testing.T) []circuit.Element {
	t.Helper()
	h, err := circuit.Gate(circuit.Single{On: circuit.Wire(0), Ctor: symbols.Gate("H")})
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}
	cx, err := circuit.Connect(circuit.Connected{
		From:     circuit.Wire(0),
		To:       circuit.Wire(1),
		At:       symbols.Control,
		Opposite: symbols.Not(),
	})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	cfg := layout.DefaultConfig()
	cfg.Wires = 2
	els, err := layout.Build(cfg, h, cx)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return els
}

func TestRenderText_BellPair(t *testing.T) {
	got := sink.RenderText(bellPair(t))
	want := strings.Join([]string{
		"─────┤ H ├──●────────────",
		"            │",
		"────────────⊕────────────",
		"",
	}, "\n")
	if got != want {
		t.Errorf("RenderText() =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderText_WireLabels(t *testing.T) {
	got := sink.RenderText(bellPair(t), sink.WithTextWireLabels([]string{"q0", "q1"}))
	if !strings.HasPrefix(got, "q0 ") {
		t.Errorf("RenderText() first line = %q, want q0 prefix", strings.SplitN(got, "\n", 2)[0])
	}
	if !strings.Contains(got, "\nq1 ") {
		t.Error("RenderText() missing q1 label line")
	}
}

func TestRenderSVG_BellPair(t *testing.T) {
	svg := string(sink.RenderSVG(bellPair(t)))

	// Gate label, control dot radius, target radius, closing tag.
	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`>H</text>`,
		`r="4"`,
		`r="8"`,
		`</svg>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}

	// Two wires, one connector.
	if got := strings.Count(svg, "<line"); got < 3 {
		t.Errorf("RenderSVG() drew %d lines, want at least 3", got)
	}
}

func TestRenderSVG_Labels(t *testing.T) {
	svg := string(sink.RenderSVG(bellPair(t), sink.WithWireLabels([]string{"|0⟩", "<x>"})))
	if !strings.Contains(svg, "|0⟩") {
		t.Error("RenderSVG() missing wire label")
	}
	if !strings.Contains(svg, "&lt;x&gt;") {
		t.Error("RenderSVG() did not escape the wire label")
	}
}

func TestRenderJSON_BellPair(t *testing.T) {
	data, err := sink.RenderJSON(bellPair(t), sink.WithJSONWireLabels([]string{"q0", "q1"}))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out struct {
		Wires    int      `json:"wires"`
		Columns  int      `json:"columns"`
		Labels   []string `json:"labels"`
		Elements []struct {
			Kind   string `json:"kind"`
			Col    int    `json:"col"`
			Row    int    `json:"row"`
			Label  string `json:"label"`
			Offset int    `json:"offset"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if out.Wires != 2 || out.Columns != 4 {
		t.Errorf("wires/columns = %d/%d, want 2/4", out.Wires, out.Columns)
	}
	if len(out.Elements) != 4 {
		t.Fatalf("got %d elements, want 4", len(out.Elements))
	}
	if out.Elements[0].Kind != "terminator" {
		t.Errorf("first element kind = %q, want terminator", out.Elements[0].Kind)
	}

	kinds := map[string]bool{}
	for _, el := range out.Elements {
		kinds[el.Kind] = true
		if el.Kind == "gate" && el.Label != "H" {
			t.Errorf("gate label = %q, want H", el.Label)
		}
		if el.Kind == "control" && el.Offset != 1 {
			t.Errorf("control offset = %d, want 1", el.Offset)
		}
	}
	for _, want := range []string{"gate", "control", "target"} {
		if !kinds[want] {
			t.Errorf("missing element kind %q", want)
		}
	}
}
