package ast

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/allocator"
	"github.com/kestrel-lang/kestrel/internal/position"
)

// List is the AST node produced by a repetition rule. Its children are
// slot references into the owning unit's node table; the arena, not the
// list, is the true owner of the children. The node itself is allocated
// in the unit's arena.
type List struct {
	// TokenStart and TokenEnd delimit the tokens the list covers,
	// inclusive. TokenEnd is position.None until the node is finalized
	// with at least one child.
	TokenStart position.Pos
	TokenEnd   position.Pos

	children allocator.Seq[NodeRef]
	unit     *Unit
}

// NewList allocates a list node in u's arena, anchored at start with no
// children and an invalid end position.
func NewList(u *Unit, start position.Pos) *List {
	l := allocator.New[List](u.Arena())
	l.TokenStart = start
	l.TokenEnd = position.None
	l.unit = u
	return l
}

// Unit returns the compilation unit the node belongs to.
func (l *List) Unit() *Unit {
	return l.unit
}

// Len returns the number of children.
func (l *List) Len() int {
	return l.children.Len()
}

// AppendChild adds a child reference, growing the child vector from the
// unit's arena.
func (l *List) AppendChild(r NodeRef) {
	l.children.Append(l.unit.Arena(), r)
}

// ChildRef returns the i-th child reference in parse order.
func (l *List) ChildRef(i int) NodeRef {
	return l.children.At(i)
}

// Child resolves the i-th child through the unit's node table.
func (l *List) Child(i int) (Element, bool) {
	return l.unit.Resolve(l.children.At(i))
}

// ChildRefs returns the child references as a slice over arena memory.
func (l *List) ChildRefs() []NodeRef {
	return l.children.Slice()
}

// Span returns the token span the list covers. A list finalized with
// children always has Span().End >= Span().Start.
func (l *List) Span() position.Span {
	return position.Span{Start: l.TokenStart, End: l.TokenEnd}
}

func (l *List) String() string {
	return fmt.Sprintf("List(%s, %d children)", l.Span(), l.Len())
}

// Terminal is a leaf node wrapping a single token. Generated parsers
// use it for token-valued grammar rules; the demo driver and tests use
// it as the element produced by trivial sub-parsers. It records the
// token position only; the token's kind and text stay in the token
// stream, which outlives the unit.
type Terminal struct {
	Pos position.Pos // the token the node wraps
}

// NewTerminal allocates a terminal node in u's arena.
func NewTerminal(u *Unit, pos position.Pos) *Terminal {
	t := allocator.New[Terminal](u.Arena())
	t.Pos = pos
	return t
}

// Span returns the single-token span of the terminal.
func (t *Terminal) Span() position.Span {
	return position.Span{Start: t.Pos, End: t.Pos}
}

func (t *Terminal) String() string {
	return fmt.Sprintf("Terminal(%s)", t.Pos)
}
