package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gatestack/pkg/cache"
	"github.com/matzehuels/gatestack/pkg/circuit"
	"github.com/matzehuels/gatestack/pkg/circuit/layout"
	"github.com/matzehuels/gatestack/pkg/circuitfile"
	"github.com/matzehuels/gatestack/pkg/observability"
	"github.com/matzehuels/gatestack/pkg/render/precedence"
	"github.com/matzehuels/gatestack/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *circuitfile.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(&opts)

	keyHash := r.keyHash(doc, opts)

	// Try to serve every requested format from the cache before laying out.
	if !opts.Refresh {
		if cached, ok := r.cachedArtifacts(ctx, keyHash, opts.Formats); ok {
			logger.Debug("artifact cache hit", "hash", keyHash)
			result := &Result{Artifacts: cached, CacheHit: true}
			result.Wires = resolveWires(doc, opts)
			return result, nil
		}
	}

	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, resolveWires(doc, opts), len(doc.Ops))
	els, wires, err := r.Layout(doc, opts)
	observability.Pipeline().OnLayoutComplete(ctx, time.Since(layoutStart), err)
	if err != nil {
		return nil, err
	}
	logger.Debug("layout complete", "wires", wires, "elements", len(els))

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, err := r.Render(ctx, doc, els, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}

	for format, data := range artifacts {
		key := cache.ArtifactKey(keyHash, format)
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			logger.Debug("artifact cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return &Result{
		Elements:  els,
		Wires:     wires,
		Artifacts: artifacts,
	}, nil
}

// Layout packs the document's operations onto wire tracks.
func (r *Runner) Layout(doc *circuitfile.Document, opts Options) ([]circuit.Element, int, error) {
	groups, err := doc.Groups()
	if err != nil {
		return nil, 0, err
	}

	cfg := layout.DefaultConfig()
	cfg.Wires = resolveWires(doc, opts)
	if cfg.Wires <= 0 {
		cfg.Wires = layout.InferWires(flatten(groups))
	}
	cfg.BaseColumn += opts.BaseColumn
	cfg.BaseRow += opts.BaseRow
	cfg.TrailingWire = !opts.NoTrailingWire

	els, err := layout.Build(cfg, groups...)
	if err != nil {
		return nil, 0, err
	}
	return els, cfg.Wires, nil
}

// Render generates each requested artifact format from placed elements.
func (r *Runner) Render(ctx context.Context, doc *circuitfile.Document, els []circuit.Element, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(ctx, doc, els, opts, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func (r *Runner) renderFormat(ctx context.Context, doc *circuitfile.Document, els []circuit.Element, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(els, sink.WithWireLabels(doc.Labels)), nil
	case FormatText:
		return []byte(sink.RenderText(els, sink.WithTextWireLabels(doc.Labels))), nil
	case FormatJSON:
		return sink.RenderJSON(els, sink.WithJSONWireLabels(doc.Labels))
	case FormatDOT:
		groups, err := doc.Groups()
		if err != nil {
			return nil, err
		}
		dot, err := precedence.ToDOT(flatten(groups), resolveWires(doc, opts))
		if err != nil {
			return nil, err
		}
		return []byte(dot), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// PrecedenceSVG renders the gate precedence graph through Graphviz.
// It is exposed separately from Execute because the view is derived from
// operations, not from placed elements, and is never cached.
func (r *Runner) PrecedenceSVG(ctx context.Context, doc *circuitfile.Document, opts Options) ([]byte, error) {
	groups, err := doc.Groups()
	if err != nil {
		return nil, err
	}
	return precedence.RenderSVG(ctx, flatten(groups), resolveWires(doc, opts))
}

func (r *Runner) cachedArtifacts(ctx context.Context, keyHash string, formats []string) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, hit, err := r.Cache.Get(ctx, cache.ArtifactKey(keyHash, format))
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// keyHash scopes the cache key by every option that changes placement.
func (r *Runner) keyHash(doc *circuitfile.Document, opts Options) string {
	return fmt.Sprintf("%s:w%d:c%d:r%d:t%t", doc.Hash(), opts.Wires, opts.BaseColumn, opts.BaseRow, !opts.NoTrailingWire)
}

func (r *Runner) logger(opts *Options) *log.Logger {
	if opts.Quiet || opts.LogWriter != nil {
		return opts.logger()
	}
	if r.Logger != nil {
		return r.Logger
	}
	return opts.logger()
}

func resolveWires(doc *circuitfile.Document, opts Options) int {
	if opts.Wires > 0 {
		return opts.Wires
	}
	return doc.Wires
}

func flatten(groups [][]circuit.Op) []circuit.Op {
	var ops []circuit.Op
	for _, g := range groups {
		for _, op := range g {
			if op.IsZero() {
				continue
			}
			ops = append(ops, op)
		}
	}
	return ops
}
