// Package cg holds the concrete building blocks of a conceptual graph:
// concepts, relations, referents, designators and coreference sets.
//
// These types are plain data holders. The matching engine in package match
// only reads them through narrow interfaces, so callers may substitute
// their own representations.
//
// # Graphs
//
// A [Graph] owns its concepts and relations. Each element carries a small
// integer handle that is stable for the lifetime of the graph and orders
// iteration deterministically:
//
//	g := cg.NewGraph()
//	cat := g.AddConcept(catType, cg.Individual(1))
//	mat := g.AddConcept(matType, nil)
//	on, err := g.AddRelation(onType, []*cg.Concept{cat, mat}, 1)
//
// # Referents
//
// A [Referent] combines a [Quantifier], an optional [Designator] ([Marker],
// [Literal] or [Name]) and an optional nested descriptor graph. A nil
// referent reads as the generic existential referent.
//
// # Coreference
//
// [Coreferences] partitions concepts into coreference sets and answers the
// two questions the matcher asks: whether two concepts are coreferent and
// which concepts share a set with a given one.
package cg
