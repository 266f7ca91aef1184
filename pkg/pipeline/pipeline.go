// Package pipeline provides the core visualization pipeline for Gatestack.
//
// This package implements the complete parse → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Decode a circuit document from TOML or JSON
//  2. Layout: Pack gate operations onto wire tracks
//  3. Render: Generate output in various formats (SVG, text, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gatestack/pkg/circuit"
	apperrors "github.com/matzehuels/gatestack/pkg/errors"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
}

// Options configures a pipeline run.
type Options struct {
	// Wires overrides the document wire count. Zero keeps the document's
	// count, inferring it from the operations when the document omits it.
	Wires int

	// Formats lists the artifacts to render. Defaults to ["svg"].
	Formats []string

	// BaseColumn and BaseRow offset the placement grid.
	BaseColumn int
	BaseRow    int

	// NoTrailingWire drops the wire segment after the last gate column.
	NoTrailingWire bool

	// Refresh bypasses the artifact cache.
	Refresh bool

	// Quiet suppresses progress logging.
	Quiet bool

	// LogWriter overrides the progress log destination. Defaults to stderr.
	LogWriter io.Writer
}

// ValidateAndSetDefaults normalizes the options in place.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported format: %s", f)
		}
	}
	if o.Wires < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "wire count must not be negative")
	}
	return nil
}

// Result holds the output of a pipeline run.
type Result struct {
	// Elements is the placed circuit, one element per occupied cell.
	Elements []circuit.Element

	// Wires is the resolved wire count after overrides and inference.
	Wires int

	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

func (o *Options) logger() *log.Logger {
	if o.Quiet {
		l := log.New(io.Discard)
		return l
	}
	if o.LogWriter != nil {
		return log.New(o.LogWriter)
	}
	return log.Default()
}
