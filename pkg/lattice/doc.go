// Package lattice provides a type hierarchy ordered by subtype/supertype,
// closed under a universal top type and an absurd bottom type.
//
// # Overview
//
// A [Lattice] wraps a [poset.Poset] whose payloads are [Type] values. It owns
// two permanent sentinels supplied at construction: the universal type (no
// supertypes) and the absurd type (no subtypes). Every other type sits
// somewhere between them, so every type has the universal type as an
// ancestor and the absurd type as a descendant.
//
// Types are looked up by identity and, when labeled, by label. Labels are
// unique within a lattice; label comparison is case-sensitive unless the
// lattice is built with [WithCaseInsensitiveLabels].
//
// # Basic Usage
//
//	top, bottom := lattice.NewType("Universal"), lattice.NewType("Absurd")
//	l, _ := lattice.New(top, bottom)
//
//	animal := lattice.NewType("Animal")
//	cat := lattice.NewType("Cat")
//	_ = l.AddType(animal, nil, nil)
//	_ = l.AddType(cat, []*lattice.Type{animal}, nil)
//
//	ok, _ := l.IsSubTypeOf(cat, animal) // true
//	sup, _ := l.ImmediateSuperTypesOf(cat) // [Animal], not [Animal Universal]
//
// # Invariants
//
// The underlying order stays acyclic and transitively reduced. Operations
// that would introduce a cycle fail with an ORDER_CONFLICT error and leave
// the lattice as it was. Removing a type lets its supertypes adopt its
// subtypes, so no other pair of types loses its ordering.
//
// # Rendering
//
// [Lattice.ToDOT] and [Lattice.RenderSVG] draw the Hasse diagram of the
// lattice with Graphviz, which is handy when debugging a type hierarchy.
//
// # Concurrency
//
// Lattice instances are not safe for concurrent use. Concurrent readers are
// safe only while no goroutine mutates the lattice.
package lattice
