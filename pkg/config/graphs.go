package config

import (
	"github.com/matzehuels/cgraph/pkg/cg"
	"github.com/matzehuels/cgraph/pkg/errors"
	"github.com/matzehuels/cgraph/pkg/lattice"
)

// GraphSection is a named graph fixture.
type GraphSection struct {
	Concepts     []ConceptEntry  `toml:"concepts"`
	Relations    []RelationEntry `toml:"relations"`
	Coreferences [][]string      `toml:"coreferences"`
}

// ConceptEntry declares one concept. At most one of Marker, Literal and Name
// may be set. Descriptor names another fixture used as nested graph.
type ConceptEntry struct {
	ID         string `toml:"id"`
	Type       string `toml:"type"`
	Quantifier string `toml:"quantifier"`
	Marker     *int   `toml:"marker"`
	Literal    string `toml:"literal"`
	Name       string `toml:"name"`
	Descriptor string `toml:"descriptor"`
}

// RelationEntry declares one relation over concept ids. OutputStart
// defaults to the last argument.
type RelationEntry struct {
	Type        string   `toml:"type"`
	Args        []string `toml:"args"`
	OutputStart *int     `toml:"output_start"`
}

// Fixture is a graph built from a GraphSection.
type Fixture struct {
	Graph        *cg.Graph
	Coreferences *cg.Coreferences
	// Concepts maps fixture ids to concepts.
	Concepts map[string]*cg.Concept
}

// BuildGraph builds the fixture called name, resolving type labels in l.
//
// Returns INVALID_INPUT for unknown fixtures, duplicate or unknown concept
// ids and descriptor cycles, and UNKNOWN_TYPE for unknown type labels.
func (f *File) BuildGraph(name string, l *lattice.Lattice) (*Fixture, error) {
	return f.buildGraph(name, l, map[string]bool{})
}

func (f *File) buildGraph(name string, l *lattice.Lattice, building map[string]bool) (*Fixture, error) {
	sec, ok := f.Graphs[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown graph %q", name)
	}
	if building[name] {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph %q contains itself as descriptor", name)
	}
	building[name] = true
	defer delete(building, name)

	fx := &Fixture{
		Graph:        cg.NewGraph(),
		Coreferences: &cg.Coreferences{},
		Concepts:     make(map[string]*cg.Concept, len(sec.Concepts)),
	}
	for i, ce := range sec.Concepts {
		if ce.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "graph %q: concept %d has no id", name, i)
		}
		if _, dup := fx.Concepts[ce.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "graph %q: duplicate concept id %q", name, ce.ID)
		}
		typ, err := resolveType(l, ce.Type)
		if err != nil {
			return nil, err
		}
		ref, err := f.referent(ce, l, building)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "graph %q: concept %q", name, ce.ID)
		}
		fx.Concepts[ce.ID] = fx.Graph.AddConcept(typ, ref)
	}

	for i, re := range sec.Relations {
		typ, err := resolveType(l, re.Type)
		if err != nil {
			return nil, err
		}
		args := make([]*cg.Concept, len(re.Args))
		for j, id := range re.Args {
			c, ok := fx.Concepts[id]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "graph %q: relation %d: unknown concept %q", name, i, id)
			}
			args[j] = c
		}
		out := len(args) - 1
		if re.OutputStart != nil {
			out = *re.OutputStart
		}
		if out < 0 {
			out = 0
		}
		if _, err := fx.Graph.AddRelation(typ, args, out); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "graph %q: relation %d", name, i)
		}
	}

	for _, set := range sec.Coreferences {
		var first *cg.Concept
		for _, id := range set {
			c, ok := fx.Concepts[id]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "graph %q: coreference: unknown concept %q", name, id)
			}
			if first == nil {
				first = c
				continue
			}
			fx.Coreferences.Link(first, c)
		}
	}
	return fx, nil
}

func (f *File) referent(ce ConceptEntry, l *lattice.Lattice, building map[string]bool) (*cg.Referent, error) {
	q, err := cg.ParseQuantifier(ce.Quantifier)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "quantifier")
	}
	ref := &cg.Referent{Quantifier: q}

	set := 0
	if ce.Marker != nil {
		ref.Designator = &cg.Marker{ID: *ce.Marker}
		set++
	}
	if ce.Literal != "" {
		ref.Designator = cg.Literal{Value: ce.Literal}
		set++
	}
	if ce.Name != "" {
		ref.Designator = cg.Name{Value: ce.Name}
		set++
	}
	if set > 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "marker, literal and name are mutually exclusive")
	}

	if ce.Descriptor != "" {
		nested, err := f.buildGraph(ce.Descriptor, l, building)
		if err != nil {
			return nil, err
		}
		ref.Descriptor = nested.Graph
	}
	if ref.Quantifier == cg.Existential && ref.IsGeneric() {
		return nil, nil
	}
	return ref, nil
}

func resolveType(l *lattice.Lattice, label string) (*lattice.Type, error) {
	if label == "" {
		return nil, nil
	}
	t, ok := l.ByLabel(label)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownType, "unknown type %q", label)
	}
	return t, nil
}
