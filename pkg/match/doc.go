// Package match finds correspondences between conceptual graphs.
//
// A [Config] selects, independently per dimension, how graphs, concepts,
// relations, types, referents and arguments are compared, whether either
// side may reuse nodes (folding), whether mappings must be connected and
// how many results to collect. A [Matcher] applies a Config:
//
//	m := match.NewMatcher(match.WithCoreferences(corefs))
//	res, err := m.MatchGraphs(query, data, match.Projection())
//	for _, mp := range res.Mappings() {
//	    fmt.Println(mp)
//	}
//
// # Search
//
// [Generator] performs the underlying backtracking search. It first
// rejects searches that cannot succeed from element counts alone, then
// builds a candidate table per element kind and enumerates assignments
// with an explicit stack, so stack depth stays bounded by the element
// counts rather than by recursion.
//
// The number of mappings can grow exponentially with graph size.
// [WithMaxResults] is the only built-in bound and should be set for
// untrusted input.
package match
