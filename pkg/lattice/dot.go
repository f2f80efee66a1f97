package lattice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the lattice's Hasse
// diagram: one node per type and one edge per stored (immediate) subtype
// link, supertypes on top.
//
// Sentinels are drawn as ellipses, other types as rounded boxes. Unlabeled
// types are shown by the short form of their ID.
func (l *Lattice) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph Lattice {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	for _, t := range l.Types() {
		shape := "box, style=\"filled,rounded\""
		if t == l.universal || t == l.absurd {
			shape = "ellipse"
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=%s];\n", t.ID().String(), t.String(), shape)
	}

	buf.WriteString("\n")
	for _, t := range l.Types() {
		for _, c := range l.order.Children(t.node) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", t.ID().String(), l.order.Value(c).ID().String())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the lattice's Hasse diagram as an SVG document.
//
// RenderSVG requires the Graphviz library (github.com/goccy/go-graphviz).
// Errors are returned if Graphviz cannot initialize, the DOT is malformed,
// or rendering fails.
func (l *Lattice) RenderSVG(ctx context.Context) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(l.ToDOT()))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
