package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gatestack/pkg/circuit"
	"github.com/matzehuels/gatestack/pkg/circuit/layout"
	"github.com/matzehuels/gatestack/pkg/circuitfile"
	"github.com/matzehuels/gatestack/pkg/render/sink"
)

// viewCommand creates the view command, an interactive step-through of the
// circuit: each step adds the next gate statement and re-renders.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Step through a circuit interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := circuitfile.ParseFile(args[0])
			if err != nil {
				return err
			}
			groups, err := doc.Groups()
			if err != nil {
				return err
			}

			model := newViewModel(doc, groups)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// viewModel is the bubbletea model for the step-through view. Step counts
// how many statements are placed; the diagram is re-laid-out on each change
// so packing always matches what the render command would produce.
type viewModel struct {
	doc    *circuitfile.Document
	groups [][]circuit.Op
	step   int
	err    error
}

func newViewModel(doc *circuitfile.Document, groups [][]circuit.Op) viewModel {
	return viewModel{doc: doc, groups: groups, step: len(groups)}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.step > 0 {
				m.step--
			}
		case "right", "l":
			if m.step < len(m.groups) {
				m.step++
			}
		case "home", "0":
			m.step = 0
		case "end", "$":
			m.step = len(m.groups)
		}
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Circuit"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d/%d statements", m.step, len(m.groups))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ step  home/end jump  q quit"))
	b.WriteString("\n\n")

	cfg := layout.DefaultConfig()
	cfg.Wires = m.doc.Wires
	els, err := layout.Build(cfg, m.groups[:m.step]...)
	if err != nil {
		b.WriteString(StyleWarning.Render(err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(sink.RenderText(els, sink.WithTextWireLabels(m.doc.Labels)))

	if m.step > 0 && m.step <= len(m.doc.Ops) {
		st := m.doc.Ops[m.step-1]
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("last: ") + StyleValue.Render(describeStatement(st)))
		b.WriteString("\n")
	}
	return b.String()
}

// describeStatement renders a one-line summary of a gate statement.
func describeStatement(st circuitfile.Statement) string {
	switch {
	case st.Barrier:
		return fmt.Sprintf("barrier %v", st.From)
	case len(st.Controls) > 0:
		return fmt.Sprintf("%s controls=%v target=%v", st.Gate, st.Controls, st.Target)
	case len(st.From) > 0:
		return fmt.Sprintf("%s %v%s%v", st.Gate, st.From, iconArrow, st.To)
	default:
		return fmt.Sprintf("%s on %v", st.Gate, st.On)
	}
}
