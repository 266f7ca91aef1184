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

// graphCommand creates the graph command for the gate precedence view.
// Gates on the same wire must keep their order; the precedence graph shows
// exactly those orderings, without any layout columns.
func (c *CLI) graphCommand() *cobra.Command {
	var output string
	var dot bool

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Render the gate precedence graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], output, dot)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input base + _graph.svg)")
	cmd.Flags().BoolVar(&dot, "dot", false, "emit Graphviz DOT source instead of SVG")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, input, output string, dot bool) error {
	doc, err := circuitfile.ParseFile(input)
	if err != nil {
		return err
	}

	runner := c.newRunner(true)

	if dot {
		artifacts, err := runner.Render(ctx, doc, nil, pipeline.Options{
			Formats: []string{pipeline.FormatDOT},
			Quiet:   true,
		})
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(artifacts[pipeline.FormatDOT])
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering precedence graph")
	spinner.Start()
	svg, err := runner.PrecedenceSVG(ctx, doc, pipeline.Options{Quiet: true})
	if err != nil {
		spinner.StopWithError("Graphviz rendering failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "_graph.svg"
	}
	if err := os.WriteFile(output, svg, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Precedence graph written")
	printFile(output)
	return nil
}
