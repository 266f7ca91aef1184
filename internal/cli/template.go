package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gatestack/pkg/circuit"
	"github.com/matzehuels/gatestack/pkg/circuit/layout"
	"github.com/matzehuels/gatestack/pkg/circuit/templates"
	"github.com/matzehuels/gatestack/pkg/pipeline"
	"github.com/matzehuels/gatestack/pkg/render/sink"
)

// templateCommand creates the template command for rendering built-in circuits.
func (c *CLI) templateCommand() *cobra.Command {
	var (
		wires  int
		edges  []string
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:       "template [qft|graphstate]",
		Short:     "Render a built-in circuit",
		ValidArgs: []string{"qft", "graphstate"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := templateGroups(args[0], wires, edges)
			if err != nil {
				return err
			}
			return writeTemplate(groups, output, format)
		},
	}

	cmd.Flags().IntVarP(&wires, "wires", "w", 3, "number of wires")
	cmd.Flags().StringArrayVar(&edges, "edge", nil, "graph state edge as a,b (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatText, "output format: text (default), svg, json")

	return cmd
}

func templateGroups(name string, wires int, edgeSpecs []string) ([][]circuit.Op, error) {
	switch name {
	case "qft":
		return templates.QFT(wires)
	case "graphstate":
		edges, err := parseEdges(edgeSpecs, wires)
		if err != nil {
			return nil, err
		}
		return templates.GraphState(wires, edges)
	default:
		return nil, fmt.Errorf("unknown template %q", name)
	}
}

// parseEdges turns repeated "a,b" flags into wire pairs. With no flags a
// linear chain 0-1-2-... is used so the output is never empty.
func parseEdges(specs []string, wires int) ([][2]int, error) {
	if len(specs) == 0 {
		edges := make([][2]int, 0, wires-1)
		for i := 0; i < wires-1; i++ {
			edges = append(edges, [2]int{i, i + 1})
		}
		return edges, nil
	}

	edges := make([][2]int, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid edge %q (want a,b)", spec)
		}
		a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
		b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errA != nil || errB != nil {
			return nil, fmt.Errorf("invalid edge %q (want a,b)", spec)
		}
		edges = append(edges, [2]int{a, b})
	}
	return edges, nil
}

func writeTemplate(groups [][]circuit.Op, output, format string) error {
	els, err := layout.Build(layout.DefaultConfig(), groups...)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case pipeline.FormatText:
		data = []byte(sink.RenderText(els))
	case pipeline.FormatSVG:
		data = sink.RenderSVG(els)
	case pipeline.FormatJSON:
		data, err = sink.RenderJSON(els)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (want text, svg, or json)", format)
	}

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printFile(output)
	return nil
}
