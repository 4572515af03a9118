// Package ast defines the arena-resident node model of the Kestrel
// runtime. Nodes live in a per-unit arena and reference each other
// through slot indices rather than pointers, so destroying a unit makes
// stale references unresolvable instead of dangling.
package ast

import (
	"github.com/kestrel-lang/kestrel/internal/allocator"
	"github.com/kestrel-lang/kestrel/internal/position"
)

// NodeRef is a 1-based index into a unit's node table. The zero value
// is InvalidRef, which never resolves.
type NodeRef uint32

// InvalidRef is the null node reference.
const InvalidRef NodeRef = 0

// IsValid returns true if the reference can name a node.
func (r NodeRef) IsValid() bool {
	return r != InvalidRef
}

// Element is the capability every arena-resident node exposes to the
// runtime: the token span it covers. The runtime is otherwise agnostic
// to concrete node kinds, which are defined by generated parsers.
type Element interface {
	Span() position.Span
}

// Unit is the handle for one compilation unit: it owns the unit's arena
// and the node table that resolves NodeRefs. A unit is parsed once and
// then destroyed or replaced whole; it is single-owner and not safe for
// concurrent use. Distinct units never share an arena and may be
// processed in parallel.
type Unit struct {
	name  string
	arena *allocator.Arena
	nodes []Element
}

// NewUnit creates a unit with a fresh arena.
func NewUnit(name string) *Unit {
	return &Unit{
		name:  name,
		arena: allocator.NewArena(0),
	}
}

// Name returns the unit's display name.
func (u *Unit) Name() string {
	return u.name
}

// Arena returns the unit's arena. Callers allocate nodes from it and
// must not retain derived references past Destroy.
func (u *Unit) Arena() *allocator.Arena {
	return u.arena
}

// Register assigns e the next free slot in the node table and returns
// its reference. Ownership of e transfers to the unit.
//
// The node table holds the only typed references to arena-resident
// nodes, which also keeps their pointer fields visible to the garbage
// collector while the unit is alive.
func (u *Unit) Register(e Element) NodeRef {
	u.nodes = append(u.nodes, e)
	return NodeRef(len(u.nodes))
}

// Resolve returns the node named by r, or false if r is invalid, out of
// range, or the unit has been destroyed.
func (u *Unit) Resolve(r NodeRef) (Element, bool) {
	if !r.IsValid() || int(r) > len(u.nodes) {
		return nil, false
	}
	return u.nodes[r-1], true
}

// NodeCount returns the number of registered nodes.
func (u *Unit) NodeCount() int {
	return len(u.nodes)
}

// Destroy releases the unit's arena and drops the node table in one
// step. Every NodeRef minted for this unit stops resolving. Must be
// sequenced after all reads of the unit's nodes have completed.
func (u *Unit) Destroy() {
	u.arena.Destroy()
	u.nodes = nil
}
