package poset

import (
	"fmt"
	"slices"

	"github.com/matzehuels/cgraph/pkg/errors"
)

// ID is a handle to a node in a [Poset]. Handles of removed nodes may be
// reused by later calls to [Poset.Add].
type ID int

type node[T any] struct {
	value    T
	parents  []ID // sorted
	children []ID // sorted
}

// Poset is a partial order kept in transitive reduction.
//
// The zero value is not usable - use New to create a valid Poset instance.
// Poset is not safe for concurrent use without external synchronization.
type Poset[T any] struct {
	nodes []*node[T]
	free  []ID
	live  int
}

// New creates an empty partial order.
func New[T any]() *Poset[T] {
	return &Poset[T]{}
}

// Add inserts an unconnected node holding v and returns its handle.
func (p *Poset[T]) Add(v T) ID {
	n := &node[T]{value: v}
	p.live++
	if k := len(p.free); k > 0 {
		id := p.free[k-1]
		p.free = p.free[:k-1]
		p.nodes[id] = n
		return id
	}
	p.nodes = append(p.nodes, n)
	return ID(len(p.nodes) - 1)
}

// Len returns the number of live nodes.
func (p *Poset[T]) Len() int { return p.live }

// Contains reports whether id refers to a live node.
func (p *Poset[T]) Contains(id ID) bool {
	return id >= 0 && int(id) < len(p.nodes) && p.nodes[id] != nil
}

// Value returns the payload of node id.
func (p *Poset[T]) Value(id ID) T { return p.node(id).value }

// SetValue replaces the payload of node id.
func (p *Poset[T]) SetValue(id ID, v T) { p.node(id).value = v }

// IDs returns the handles of all live nodes in ascending order.
func (p *Poset[T]) IDs() []ID {
	ids := make([]ID, 0, p.live)
	for i, n := range p.nodes {
		if n != nil {
			ids = append(ids, ID(i))
		}
	}
	return ids
}

// Parents returns the immediate parents of id in ascending handle order.
// The returned slice is a copy.
func (p *Poset[T]) Parents(id ID) []ID { return slices.Clone(p.node(id).parents) }

// Children returns the immediate children of id in ascending handle order.
// The returned slice is a copy.
func (p *Poset[T]) Children(id ID) []ID { return slices.Clone(p.node(id).children) }

// HasImmediateParent reports whether parent is stored as a direct parent of id.
func (p *Poset[T]) HasImmediateParent(id, parent ID) bool {
	_, ok := slices.BinarySearch(p.node(id).parents, parent)
	return ok
}

// HasImmediateChild reports whether child is stored as a direct child of id.
func (p *Poset[T]) HasImmediateChild(id, child ID) bool {
	_, ok := slices.BinarySearch(p.node(id).children, child)
	return ok
}

// HasParent reports whether ancestor is a proper ancestor of id.
func (p *Poset[T]) HasParent(id, ancestor ID) bool {
	return id != ancestor && p.reaches(id, ancestor, p.parentsOf)
}

// HasChild reports whether descendant is a proper descendant of id.
func (p *Poset[T]) HasChild(id, descendant ID) bool {
	return id != descendant && p.reaches(id, descendant, p.childrenOf)
}

// Ancestors returns every proper ancestor of id in breadth-first order.
func (p *Poset[T]) Ancestors(id ID) []ID { return p.closure(id, p.parentsOf) }

// Descendants returns every proper descendant of id in breadth-first order.
func (p *Poset[T]) Descendants(id ID) []ID { return p.closure(id, p.childrenOf) }

// Link records that parent precedes child.
//
// Link is a no-op if parent == child or if parent already precedes child,
// directly or through a longer path. It returns an ORDER_CONFLICT error,
// leaving the order unchanged, if child already precedes parent. Otherwise
// it drops every stored edge made redundant by the new one and stores
// parent→child.
func (p *Poset[T]) Link(parent, child ID) error {
	if parent == child || p.HasChild(parent, child) {
		return nil
	}
	if p.HasChild(child, parent) {
		return errors.New(errors.ErrCodeOrderConflict,
			"node %d already precedes node %d", child, parent)
	}

	up := append(p.Ancestors(parent), parent)
	down := make(map[ID]bool)
	down[child] = true
	for _, d := range p.Descendants(child) {
		down[d] = true
	}
	for _, a := range up {
		for _, c := range slices.Clone(p.node(a).children) {
			if down[c] {
				p.unlink(a, c)
			}
		}
	}

	p.link(parent, child)
	return nil
}

// RemoveParent detaches the direct edge dead→id and reattaches id to each of
// dead's own parents, so id keeps every ancestor it had through dead.
// It is a no-op if dead is not a direct parent of id.
func (p *Poset[T]) RemoveParent(id, dead ID) {
	if !p.HasImmediateParent(id, dead) {
		return
	}
	p.unlink(dead, id)
	for _, gp := range slices.Clone(p.node(dead).parents) {
		p.mustLink(gp, id)
	}
}

// RemoveChild detaches the direct edge id→dead and reattaches each of dead's
// own children directly under id, so id keeps every descendant it had
// through dead. It is a no-op if dead is not a direct child of id.
func (p *Poset[T]) RemoveChild(id, dead ID) {
	if !p.HasImmediateChild(id, dead) {
		return
	}
	p.unlink(id, dead)
	for _, gc := range slices.Clone(p.node(dead).children) {
		p.mustLink(id, gc)
	}
}

// Remove detaches id from the order, letting its parents adopt its children,
// and frees the handle. The payload is returned to the caller.
func (p *Poset[T]) Remove(id ID) T {
	n := p.node(id)
	for _, c := range slices.Clone(n.children) {
		p.RemoveParent(c, id)
	}
	for _, par := range slices.Clone(n.parents) {
		p.RemoveChild(par, id)
	}
	p.nodes[id] = nil
	p.free = append(p.free, id)
	p.live--
	return n.value
}

// Validate checks the order invariants and returns nil if they hold.
//
// It verifies that parent and child sets mirror each other, that no cycle
// exists (depth-first search with white/gray/black coloring), and that no
// stored edge is implied by a longer path. A non-nil result is always an
// INTERNAL_ERROR and indicates a bug in this package.
func (p *Poset[T]) Validate() error {
	for _, id := range p.IDs() {
		for _, c := range p.node(id).children {
			if !p.HasImmediateParent(c, id) {
				return errors.New(errors.ErrCodeInternal, "edge %d→%d has no mirror", id, c)
			}
		}
	}
	if err := p.detectCycles(); err != nil {
		return err
	}
	for _, id := range p.IDs() {
		kids := p.node(id).children
		for _, c := range kids {
			for _, other := range kids {
				if other != c && p.HasChild(other, c) {
					return errors.New(errors.ErrCodeInternal,
						"edge %d→%d is implied by %d", id, c, other)
				}
			}
		}
	}
	return nil
}

func (p *Poset[T]) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(p.nodes))
	var hasCycle bool

	var dfs func(id ID)
	dfs = func(id ID) {
		color[id] = gray
		for _, child := range p.nodes[id].children {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range p.IDs() {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return errors.New(errors.ErrCodeInternal, "order contains a cycle through node %d", id)
			}
		}
	}
	return nil
}

func (p *Poset[T]) node(id ID) *node[T] {
	if !p.Contains(id) {
		panic(fmt.Sprintf("poset: node %d is not live", id))
	}
	return p.nodes[id]
}

func (p *Poset[T]) parentsOf(id ID) []ID  { return p.nodes[id].parents }
func (p *Poset[T]) childrenOf(id ID) []ID { return p.nodes[id].children }

func (p *Poset[T]) reaches(from, to ID, next func(ID) []ID) bool {
	p.node(to)
	seen := map[ID]bool{from: true}
	queue := []ID{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range next(cur) {
			if n == to {
				return true
			}
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

func (p *Poset[T]) closure(id ID, next func(ID) []ID) []ID {
	p.node(id)
	seen := map[ID]bool{id: true}
	var out []ID
	queue := []ID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range next(cur) {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
				queue = append(queue, n)
			}
		}
	}
	return out
}

// mustLink is used by reattachment, where a conflict would mean the order
// already held a cycle.
func (p *Poset[T]) mustLink(parent, child ID) {
	if err := p.Link(parent, child); err != nil {
		panic(fmt.Sprintf("poset: reattach %d→%d: %v", parent, child, err))
	}
}

func (p *Poset[T]) link(parent, child ID) {
	pn, cn := p.node(parent), p.node(child)
	pn.children = insertSorted(pn.children, child)
	cn.parents = insertSorted(cn.parents, parent)
}

func (p *Poset[T]) unlink(parent, child ID) {
	pn, cn := p.node(parent), p.node(child)
	pn.children = deleteSorted(pn.children, child)
	cn.parents = deleteSorted(cn.parents, parent)
}

func insertSorted(s []ID, id ID) []ID {
	i, ok := slices.BinarySearch(s, id)
	if ok {
		return s
	}
	return slices.Insert(s, i, id)
}

func deleteSorted(s []ID, id ID) []ID {
	i, ok := slices.BinarySearch(s, id)
	if !ok {
		return s
	}
	return slices.Delete(s, i, i+1)
}
