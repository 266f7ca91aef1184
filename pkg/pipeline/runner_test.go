package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/gatestack/pkg/cache"
	"github.com/matzehuels/gatestack/pkg/circuitfile"
	apperrors "github.com/matzehuels/gatestack/pkg/errors"
)

func bellDoc() *circuitfile.Document {
	return &circuitfile.Document{
		Wires: 2,
		Ops: []circuitfile.Statement{
			{Gate: "h", On: []int{0}},
			{Gate: "cx", From: []int{0}, To: []int{1}},
		},
	}
}

func TestOptions_ValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default Formats = %v, want [svg]", opts.Formats)
	}

	opts = Options{Formats: []string{"png"}}
	if err := opts.ValidateAndSetDefaults(); !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format error = %v, want %v", err, apperrors.ErrCodeInvalidFormat)
	}

	opts = Options{Wires: -1}
	if err := opts.ValidateAndSetDefaults(); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("negative wires error = %v, want %v", err, apperrors.ErrCodeInvalidInput)
	}
}

func TestRunner_Execute(t *testing.T) {
	r := NewRunner(nil, nil)
	opts := Options{Formats: []string{FormatText, FormatJSON}, Quiet: true}

	result, err := r.Execute(context.Background(), bellDoc(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Wires != 2 {
		t.Errorf("Wires = %d, want 2", result.Wires)
	}
	if result.CacheHit {
		t.Error("first run should not be a cache hit")
	}
	if len(result.Elements) == 0 {
		t.Error("Execute() returned no elements")
	}
	text, ok := result.Artifacts[FormatText]
	if !ok {
		t.Fatal("Execute() produced no text artifact")
	}
	if !bytes.Contains(text, []byte("H")) {
		t.Errorf("text artifact does not show the Hadamard:\n%s", text)
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("Execute() produced no json artifact")
	}
}

func TestRunner_Execute_CacheRoundTrip(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatText}, Quiet: true}

	first, err := r.Execute(ctx, bellDoc(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	second, err := r.Execute(ctx, bellDoc(), opts)
	if err != nil {
		t.Fatalf("Execute() second run error = %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the artifact cache")
	}
	if !bytes.Equal(first.Artifacts[FormatText], second.Artifacts[FormatText]) {
		t.Error("cached artifact differs from the fresh render")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, bellDoc(), opts)
	if err != nil {
		t.Fatalf("Execute() with Refresh error = %v", err)
	}
	if third.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunner_Execute_DOT(t *testing.T) {
	r := NewRunner(nil, nil)
	result, err := r.Execute(context.Background(), bellDoc(), Options{Formats: []string{FormatDOT}, Quiet: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, "digraph") {
		t.Errorf("dot artifact is not a digraph:\n%s", dot)
	}
}

func TestRunner_Layout_InfersWires(t *testing.T) {
	doc := bellDoc()
	doc.Wires = 0
	r := NewRunner(nil, nil)

	_, wires, err := r.Layout(doc, Options{Quiet: true})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if wires != 2 {
		t.Errorf("inferred wires = %d, want 2", wires)
	}
}

func TestRunner_Layout_WireOverride(t *testing.T) {
	r := NewRunner(nil, nil)
	_, wires, err := r.Layout(bellDoc(), Options{Wires: 4, Quiet: true})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if wires != 4 {
		t.Errorf("wires = %d, want the override 4", wires)
	}
}

func TestRunner_Layout_BadDocument(t *testing.T) {
	doc := &circuitfile.Document{
		Wires: 2,
		Ops:   []circuitfile.Statement{{Gate: "h", On: []int{5}}},
	}
	r := NewRunner(nil, nil)
	if _, _, err := r.Layout(doc, Options{Quiet: true}); err == nil {
		t.Error("Layout() should reject an out-of-range wire")
	}
}

func TestKeyHash_ScopesByPlacementOptions(t *testing.T) {
	r := NewRunner(nil, nil)
	doc := bellDoc()

	base := r.keyHash(doc, Options{})
	if r.keyHash(doc, Options{Wires: 4}) == base {
		t.Error("wire override should change the cache key")
	}
	if r.keyHash(doc, Options{BaseColumn: 2}) == base {
		t.Error("base column should change the cache key")
	}
	if r.keyHash(doc, Options{NoTrailingWire: true}) == base {
		t.Error("trailing wire toggle should change the cache key")
	}
	if r.keyHash(doc, Options{Formats: []string{FormatText}}) != base {
		t.Error("formats must not change the cache key, they scope the artifact key")
	}
}
