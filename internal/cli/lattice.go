package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cgraph/pkg/lattice"
)

// latticeCommand creates the lattice command group.
func (c *CLI) latticeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lattice",
		Short: "Inspect the type lattice",
	}

	cmd.AddCommand(c.latticeShowCommand())
	cmd.AddCommand(c.latticeQueryCommand())
	cmd.AddCommand(c.latticeDotCommand())

	return cmd
}

// latticeShowCommand creates the "lattice show" subcommand.
func (c *CLI) latticeShowCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print every type with its immediate supertypes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := c.loadLattice()
			if err != nil {
				return err
			}

			printSuccess("Type lattice")
			printStats(fmt.Sprintf("%d types", l.Len()), fmt.Sprintf("%d links", countLinks(l)))
			for _, t := range l.Types() {
				if t == l.Universal() {
					continue
				}
				supers, err := l.ImmediateSuperTypesOf(t)
				if err != nil {
					return err
				}
				printKeyValue(t.String(), joinTypes(supers))
			}

			if check {
				if err := l.Validate(); err != nil {
					printError("Invariant violated: %v", err)
					return fmt.Errorf("validate: %w", err)
				}
				printSuccess("Acyclic and transitively reduced")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "re-check lattice invariants")

	return cmd
}

// latticeQueryCommand creates the "lattice query" subcommand.
func (c *CLI) latticeQueryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query <type>",
		Short: "Print the supertypes and subtypes of a type",
		Example: `  cgraph lattice query Cat
  cgraph -c zoo.toml lattice query Animal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := c.loadLattice()
			if err != nil {
				return err
			}
			t, ok := l.ByLabel(args[0])
			if !ok {
				return fmt.Errorf("unknown type %q", args[0])
			}

			queries := []struct {
				label string
				fn    func(*lattice.Type) ([]*lattice.Type, error)
			}{
				{"Parents", l.ImmediateSuperTypesOf},
				{"Ancestors", l.ProperSuperTypesOf},
				{"Children", l.ImmediateSubTypesOf},
				{"Descendants", l.ProperSubTypesOf},
			}
			printSuccess("Type %s", StyleHighlight.Render(t.String()))
			if def := t.Definition(); def != nil {
				printKeyValue("Definition", fmt.Sprint(def))
			}
			for _, q := range queries {
				ts, err := q.fn(t)
				if err != nil {
					return err
				}
				printKeyValue(q.label, joinTypes(ts))
			}
			return nil
		},
	}
}

// latticeDotCommand creates the "lattice dot" subcommand.
func (c *CLI) latticeDotCommand() *cobra.Command {
	var output string
	var svg bool

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Export the Hasse diagram of the lattice",
		Example: `  # DOT to stdout
  cgraph lattice dot

  # Rendered SVG
  cgraph lattice dot --svg -o lattice.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := c.loadLattice()
			if err != nil {
				return err
			}

			data := []byte(l.ToDOT())
			if svg {
				prog := newProgress(loggerFromContext(cmd.Context()))
				data, err = l.RenderSVG(cmd.Context())
				if err != nil {
					return fmt.Errorf("render: %w", err)
				}
				prog.done("Rendered SVG")
			}

			if err := writeFile(data, output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if output != "" {
				printSuccess("Lattice exported")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG with Graphviz instead of DOT")

	return cmd
}

func joinTypes(ts []*lattice.Type) string {
	if len(ts) == 0 {
		return "-"
	}
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func countLinks(l *lattice.Lattice) int {
	n := 0
	for _, t := range l.Types() {
		children, _ := l.ImmediateSubTypesOf(t)
		n += len(children)
	}
	return n
}
