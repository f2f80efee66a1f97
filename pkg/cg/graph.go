package cg

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/cgraph/pkg/errors"
	"github.com/matzehuels/cgraph/pkg/lattice"
)

// Concept is a typed node of a conceptual graph.
type Concept struct {
	Type     *lattice.Type
	Referent *Referent

	graph *Graph
	id    int
}

// ID returns the concept's handle within its graph.
func (c *Concept) ID() int { return c.id }

// Graph returns the graph that owns c, or nil once c has been removed.
func (c *Concept) Graph() *Graph { return c.graph }

func (c *Concept) String() string {
	if c == nil {
		return "<nil>"
	}
	ref := c.Referent.String()
	if ref == "" {
		return fmt.Sprintf("[%s]", c.Type)
	}
	return fmt.Sprintf("[%s: %s]", c.Type, ref)
}

// Relation is a typed hyper-edge over an ordered list of concepts. Arguments
// before OutputStart are inputs, the rest are outputs.
type Relation struct {
	Type        *lattice.Type
	Args        []*Concept
	OutputStart int

	graph *Graph
	id    int
}

// ID returns the relation's handle within its graph.
func (r *Relation) ID() int { return r.id }

// Graph returns the graph that owns r, or nil once r has been removed.
func (r *Relation) Graph() *Graph { return r.graph }

// Inputs returns the input arguments.
func (r *Relation) Inputs() []*Concept { return r.Args[:r.OutputStart] }

// Outputs returns the output arguments.
func (r *Relation) Outputs() []*Concept { return r.Args[r.OutputStart:] }

func (r *Relation) String() string {
	if r == nil {
		return "<nil>"
	}
	args := make([]string, len(r.Args))
	for i, a := range r.Args {
		args[i] = fmt.Sprintf("c%d", a.id)
	}
	return fmt.Sprintf("(%s %s | %s)", r.Type,
		strings.Join(args[:r.OutputStart], " "), strings.Join(args[r.OutputStart:], " "))
}

// Graph is a directed hyper-graph of concepts connected by relations.
//
// Concept and relation handles are assigned in insertion order and never
// reused, so iteration order is deterministic. Graph is not safe for
// concurrent use.
type Graph struct {
	concepts  []*Concept
	relations []*Relation
	nextID    int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Concepts returns the graph's concepts in handle order.
func (g *Graph) Concepts() []*Concept {
	if g == nil {
		return nil
	}
	return slices.Clone(g.concepts)
}

// Relations returns the graph's relations in handle order.
func (g *Graph) Relations() []*Relation {
	if g == nil {
		return nil
	}
	return slices.Clone(g.relations)
}

// Size returns the total number of concepts and relations.
func (g *Graph) Size() int {
	if g == nil {
		return 0
	}
	return len(g.concepts) + len(g.relations)
}

// AddConcept creates a concept of type t with referent ref. Both may be nil.
func (g *Graph) AddConcept(t *lattice.Type, ref *Referent) *Concept {
	c := &Concept{Type: t, Referent: ref, graph: g, id: g.nextID}
	g.nextID++
	g.concepts = append(g.concepts, c)
	return c
}

// AddRelation creates a relation of type t over args. Arguments before
// outputStart are inputs.
//
// Returns INVALID_INPUT if an argument belongs to another graph or
// outputStart is outside [0, len(args)].
func (g *Graph) AddRelation(t *lattice.Type, args []*Concept, outputStart int) (*Relation, error) {
	if outputStart < 0 || outputStart > len(args) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"output start %d out of range for %d arguments", outputStart, len(args))
	}
	for i, a := range args {
		if a == nil || a.graph != g {
			return nil, errors.New(errors.ErrCodeInvalidInput, "argument %d is not a concept of this graph", i)
		}
	}
	r := &Relation{Type: t, Args: slices.Clone(args), OutputStart: outputStart, graph: g, id: g.nextID}
	g.nextID++
	g.relations = append(g.relations, r)
	return r, nil
}

// RelationsOf returns the relations that take c as an argument, in handle
// order. A relation listing c twice appears once.
func (g *Graph) RelationsOf(c *Concept) []*Relation {
	if g == nil {
		return nil
	}
	var out []*Relation
	for _, r := range g.relations {
		if slices.Contains(r.Args, c) {
			out = append(out, r)
		}
	}
	return out
}

// RemoveRelation detaches r from the graph. It reports whether r was present.
func (g *Graph) RemoveRelation(r *Relation) bool {
	if r == nil || r.graph != g {
		return false
	}
	g.relations = slices.DeleteFunc(g.relations, func(x *Relation) bool { return x == r })
	r.graph = nil
	return true
}

// RemoveConcept detaches c and every relation attached to it. It reports
// whether c was present.
func (g *Graph) RemoveConcept(c *Concept) bool {
	if c == nil || c.graph != g {
		return false
	}
	for _, r := range g.RelationsOf(c) {
		g.RemoveRelation(r)
	}
	g.concepts = slices.DeleteFunc(g.concepts, func(x *Concept) bool { return x == c })
	c.graph = nil
	return true
}

// Connected reports whether every concept is reachable from every other
// through shared relations. Graphs with fewer than two concepts are
// connected.
func (g *Graph) Connected() bool {
	if g == nil || len(g.concepts) < 2 {
		return true
	}
	seen := map[*Concept]bool{g.concepts[0]: true}
	queue := []*Concept{g.concepts[0]}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, r := range g.RelationsOf(c) {
			for _, a := range r.Args {
				if !seen[a] {
					seen[a] = true
					queue = append(queue, a)
				}
			}
		}
	}
	return len(seen) == len(g.concepts)
}
