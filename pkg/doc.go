// Package pkg holds the cgraph libraries.
//
// # Overview
//
// cgraph models conceptual graphs over a partially ordered type hierarchy
// and searches for correspondences between them:
//
//  1. [poset] - generic partial order kept acyclic and transitively reduced
//  2. [lattice] - labeled types between a universal and an absurd type
//  3. [cg] - concepts, relations, referents and coreference sets
//  4. [match] - configurable backtracking matcher (isomorphism, projection, subgraph)
//  5. [config] - TOML loading of lattices, fixtures and match settings
//
// Errors carry a machine-readable code from [errors]; [observability]
// exposes hooks for lattice mutations and match searches.
//
// # Quick Start
//
//	l, _ := lattice.New(lattice.NewType("Entity"), lattice.NewType("Absurd"))
//	animal, cat := lattice.NewType("Animal"), lattice.NewType("Cat")
//	_ = l.AddType(animal, nil, nil)
//	_ = l.AddType(cat, []*lattice.Type{animal}, nil)
//
//	query, data := cg.NewGraph(), cg.NewGraph()
//	query.AddConcept(animal, nil)
//	data.AddConcept(cat, cg.Individual(7))
//
//	res, _ := match.MatchGraphs(query, data, match.Projection())
//	fmt.Println(res.Matched()) // true
//
// [poset]: github.com/matzehuels/cgraph/pkg/poset
// [lattice]: github.com/matzehuels/cgraph/pkg/lattice
// [cg]: github.com/matzehuels/cgraph/pkg/cg
// [match]: github.com/matzehuels/cgraph/pkg/match
// [config]: github.com/matzehuels/cgraph/pkg/config
// [errors]: github.com/matzehuels/cgraph/pkg/errors
// [observability]: github.com/matzehuels/cgraph/pkg/observability
package pkg
