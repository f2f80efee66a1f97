// Package poset provides a partial order over arbitrary payloads, stored as
// a directed acyclic multi-parent/multi-child graph kept in transitive
// reduction.
//
// # Overview
//
// A [Poset] is an arena of nodes addressed by integer handles ([ID]). Each
// node owns one payload and two neighbor sets: its immediate parents and its
// immediate children. Handles are small, comparable and stable for the
// lifetime of a node, so callers keep their own side tables keyed by [ID]
// instead of hashing payload identities.
//
// Two invariants hold after every mutation:
//
//   - Acyclicity: no node is reachable from itself. [Poset.Link] refuses an
//     edge that would close a cycle with an ORDER_CONFLICT error and leaves
//     the order untouched.
//   - Transitive reduction: an edge a→b is stored only if no longer path from
//     a to b exists. Inserting p→c removes every stored edge from an
//     ancestor-or-self of p to a descendant-or-self of c, since the new edge
//     now implies it.
//
// Because redundant edges are never stored, ancestor and descendant queries
// walk the reduced graph directly. No closure is cached.
//
// # Basic Usage
//
//	p := poset.New[string]()
//	top := p.Add("top")
//	mid := p.Add("mid")
//	bot := p.Add("bot")
//	_ = p.Link(top, bot)
//	_ = p.Link(top, mid)
//	_ = p.Link(mid, bot) // drops top→bot, now implied by top→mid→bot
//
// # Removal
//
// [Poset.RemoveParent] and [Poset.RemoveChild] detach a single edge and then
// reattach the orphaned side to the far side's neighbors, so every other
// node keeps its reachability. [Poset.Remove] applies the same procedure to
// all edges of a node before freeing its handle.
//
// # Concurrency
//
// Poset instances are not safe for concurrent use. Concurrent readers are
// fine only while no goroutine mutates the order.
package poset
