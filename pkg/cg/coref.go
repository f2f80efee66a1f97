package cg

import "slices"

// Coreferences partitions concepts into coreference sets. A concept that was
// never linked is coreferent only with itself.
//
// The zero value is ready to use.
type Coreferences struct {
	sets map[*Concept]*corefSet
}

type corefSet struct {
	members []*Concept
}

// Link declares a and b coreferent, merging their sets.
func (cr *Coreferences) Link(a, b *Concept) {
	if a == b {
		return
	}
	if cr.sets == nil {
		cr.sets = make(map[*Concept]*corefSet)
	}
	sa, sb := cr.setOf(a), cr.setOf(b)
	if sa == sb {
		return
	}
	if len(sa.members) < len(sb.members) {
		sa, sb = sb, sa
	}
	for _, c := range sb.members {
		sa.members = append(sa.members, c)
		cr.sets[c] = sa
	}
}

// AreCoreferent reports whether a and b share a coreference set. Every
// concept is coreferent with itself.
func (cr *Coreferences) AreCoreferent(a, b *Concept) bool {
	if a == b {
		return true
	}
	sa, ok := cr.sets[a]
	return ok && sa == cr.sets[b]
}

// Closure returns every concept coreferent with c, c included, in link
// order.
func (cr *Coreferences) Closure(c *Concept) []*Concept {
	if s, ok := cr.sets[c]; ok {
		return slices.Clone(s.members)
	}
	return []*Concept{c}
}

// Sets returns the number of non-trivial coreference sets.
func (cr *Coreferences) Sets() int {
	seen := make(map[*corefSet]bool)
	for _, s := range cr.sets {
		seen[s] = true
	}
	return len(seen)
}

func (cr *Coreferences) setOf(c *Concept) *corefSet {
	if s, ok := cr.sets[c]; ok {
		return s
	}
	s := &corefSet{members: []*Concept{c}}
	cr.sets[c] = s
	return s
}
