package circuitfile

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gatestack/pkg/circuit"
	apperrors "github.com/matzehuels/gatestack/pkg/errors"
	"github.com/matzehuels/gatestack/pkg/render/symbols"
)

// Document is the canonical circuit document: a wire count, optional wire
// labels, and gate statements in time order. The bson tags match the
// storage format used by the share store backends.
type Document struct {
	Wires  int         `toml:"wires,omitempty" json:"wires,omitempty" bson:"wires,omitempty"`
	Labels []string    `toml:"labels,omitempty" json:"labels,omitempty" bson:"labels,omitempty"`
	Ops    []Statement `toml:"ops" json:"ops" bson:"ops"`
}

// Statement is one declarative gate statement. Its construction shape is
// determined by which wire fields are set: On for single-wire gates,
// From/To for two-endpoint gates, Controls/Target for multi-control gates,
// Barrier for synchronization barriers (From = start, optional To = end).
type Statement struct {
	Gate     string `toml:"gate,omitempty" json:"gate,omitempty" bson:"gate,omitempty"`
	On       []int  `toml:"on,omitempty" json:"on,omitempty" bson:"on,omitempty"`
	From     []int  `toml:"from,omitempty" json:"from,omitempty" bson:"from,omitempty"`
	To       []int  `toml:"to,omitempty" json:"to,omitempty" bson:"to,omitempty"`
	Controls []int  `toml:"controls,omitempty" json:"controls,omitempty" bson:"controls,omitempty"`
	Target   []int  `toml:"target,omitempty" json:"target,omitempty" bson:"target,omitempty"`
	Barrier  bool   `toml:"barrier,omitempty" json:"barrier,omitempty" bson:"barrier,omitempty"`
}

// ParseFile reads a circuit document, choosing the encoding by extension:
// .toml for TOML, .json for JSON.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, err, "read %s", path)
	}
	switch ext := filepath.Ext(path); ext {
	case ".toml":
		return ParseTOML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported circuit file extension %q (use .toml or .json)", ext)
	}
}

// ParseTOML decodes a TOML circuit document. Unknown keys are rejected.
func ParseTOML(data []byte) (*Document, error) {
	var doc Document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, apperrors.New(apperrors.ErrCodeInvalidDocument, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &doc, nil
}

// ParseJSON decodes a JSON circuit document. Unknown keys are rejected.
func ParseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "decode JSON")
	}
	return &doc, nil
}

// MarshalJSON encodes the document as indented JSON.
func (d *Document) MarshalJSON() ([]byte, error) {
	type alias Document // avoid recursing into this method
	return json.MarshalIndent((*alias)(d), "", "  ")
}

// MarshalTOML encodes the document as TOML.
func (d *Document) MarshalTOML() ([]byte, error) {
	type alias Document // avoid recursing into this method
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode((*alias)(d)); err != nil {
		return nil, fmt.Errorf("encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// Hash returns a stable SHA-256 hex digest of the document, suitable as a
// render-cache key.
func (d *Document) Hash() string {
	data, _ := json.Marshal(d)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Groups converts the document's statements into construction-layer op
// groups ready for layout.Build, one group per statement.
func (d *Document) Groups() ([][]circuit.Op, error) {
	groups := make([][]circuit.Op, 0, len(d.Ops))
	for i, st := range d.Ops {
		ops, err := st.ops()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "op %d", i)
		}
		groups = append(groups, ops)
	}
	return groups, nil
}

func (st Statement) ops() ([]circuit.Op, error) {
	switch st.kind() {
	case kindBarrier:
		return st.barrierOps()
	case kindSingle:
		ctor, err := singleCtor(st.Gate)
		if err != nil {
			return nil, err
		}
		return circuit.Gate(circuit.Single{On: circuit.WireList(st.On...), Ctor: ctor})
	case kindEndpoint:
		shape, err := endpointShape(st.Gate)
		if err != nil {
			return nil, err
		}
		shape.From = circuit.WireList(st.From...)
		shape.To = circuit.WireList(st.To...)
		return circuit.Connect(shape)
	case kindControlled:
		controls := make([]circuit.Wires, len(st.Controls))
		for i, c := range st.Controls {
			controls[i] = circuit.Wire(c)
		}
		return circuit.Control(circuit.Controlled{
			Controls: controls,
			Target:   circuit.WireList(st.Target...),
			Gate:     targetCtor(st.Gate),
			Mark:     symbols.OpenControl,
		})
	default:
		return nil, fmt.Errorf("statement sets no recognized wire fields (need on, from/to, controls/target, or barrier)")
	}
}

type statementKind int

const (
	kindInvalid statementKind = iota
	kindSingle
	kindEndpoint
	kindControlled
	kindBarrier
)

func (st Statement) kind() statementKind {
	switch {
	case st.Barrier:
		return kindBarrier
	case len(st.On) > 0 && len(st.From) == 0 && len(st.To) == 0 && len(st.Controls) == 0:
		return kindSingle
	case len(st.From) > 0 && len(st.To) > 0 && len(st.On) == 0 && len(st.Controls) == 0:
		return kindEndpoint
	case len(st.Controls) > 0 && len(st.Target) > 0 && len(st.On) == 0 && len(st.From) == 0:
		return kindControlled
	default:
		return kindInvalid
	}
}

func (st Statement) barrierOps() ([]circuit.Op, error) {
	start := 0
	if len(st.From) > 0 {
		start = st.From[0]
	}
	if len(st.To) == 0 {
		return []circuit.Op{circuit.BarrierAt(start)}, nil
	}
	op, err := circuit.BarrierRange(start, st.To[0])
	if err != nil {
		return nil, err
	}
	return []circuit.Op{op}, nil
}

// singleCtor maps a gate name to its single-wire drawable.
func singleCtor(name string) (circuit.Ctor, error) {
	switch {
	case name == "":
		return nil, fmt.Errorf("single-wire statement requires a gate name")
	case strings.EqualFold(name, "measure") || name == "M":
		return symbols.Measure(), nil
	default:
		return symbols.Gate(name), nil
	}
}

// endpointShape maps a two-endpoint gate name to its drawable pair.
func endpointShape(name string) (circuit.Connected, error) {
	switch strings.ToUpper(name) {
	case "CNOT", "CX":
		return circuit.Connected{At: symbols.Control, Opposite: symbols.Not()}, nil
	case "CZ":
		return circuit.Connected{At: symbols.Control, Opposite: symbols.Control(0)}, nil
	case "SWAP":
		return circuit.Connected{At: symbols.Swap, Opposite: symbols.Swap(0)}, nil
	default:
		return circuit.Connected{}, fmt.Errorf("unsupported two-endpoint gate %q (use CNOT, CX, CZ or SWAP)", name)
	}
}

// targetCtor maps a multi-control target gate name to its drawable.
func targetCtor(name string) circuit.Ctor {
	if strings.ToUpper(name) == "X" || name == "" {
		return symbols.Not()
	}
	return symbols.Gate(name)
}
