package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gatestack/pkg/circuitfile"
	"github.com/matzehuels/gatestack/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple formats)
	formats []string // output formats: "svg", "text", "json", "dot"
	wires   int      // wire count override (0 = document or inferred)
	noCache bool     // bypass the artifact cache
	refresh bool     // recompute even on a cache hit
	stdout  bool     // write the artifact to stdout instead of a file
}

// newRenderCmd creates the render command for generating circuit diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a circuit file to SVG, text, JSON, or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), text, json, dot (comma-separated)")
	cmd.Flags().IntVarP(&opts.wires, "wires", "w", 0, "wire count (default: from document, else inferred)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write to stdout instead of a file")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := circuitfile.ParseFile(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d statements", input, len(doc.Ops))

	runner := c.newRunner(opts.noCache)
	result, err := runner.Execute(ctx, doc, pipeline.Options{
		Wires:   opts.wires,
		Formats: opts.formats,
		Refresh: opts.refresh,
		Quiet:   true,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d statements on %d wires", len(doc.Ops), result.Wires))

	if opts.stdout {
		if len(opts.formats) != 1 {
			return fmt.Errorf("--stdout requires exactly one format")
		}
		_, err := os.Stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	base := artifactBase(opts.output, input)
	for _, format := range opts.formats {
		path := artifactPath(base, opts.output, format, len(opts.formats) == 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Wires, len(doc.Ops), result.CacheHit)

	return nil
}

// formatExts maps output format to file extension.
var formatExts = map[string]string{
	pipeline.FormatSVG:  ".svg",
	pipeline.FormatText: ".txt",
	pipeline.FormatJSON: ".json",
	pipeline.FormatDOT:  ".dot",
}

// artifactBase derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output carries
// a known format extension, that extension is stripped too.
func artifactBase(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for _, known := range formatExts {
		if ext == known {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// artifactPath builds the output path for one format. A single explicit
// output path is used verbatim so `-o diagram.svg` writes exactly there.
func artifactPath(base, output, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return base + formatExts[format]
}
