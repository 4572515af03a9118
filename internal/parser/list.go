package parser

import (
	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/position"
)

// SubParser is the shape of the element and separator collaborators a
// list rule drives. Invoked at a start position, it returns the
// reference of the node it produced and the position after the match,
// or (ast.InvalidRef, position.None) on failure. Why a sub-parser
// failed is opaque to the list runtime; the sentinel is the only
// failure channel. Ownership of the produced node transfers to the
// unit the rule is parsing into.
type SubParser func(start position.Pos) (ast.NodeRef, position.Pos)

// ListRule is one repetition rule instantiation.
type ListRule struct {
	// AllowEmpty makes zero repetitions a successful parse rather than
	// a failure.
	AllowEmpty bool

	// Element matches one repeated occurrence. Required.
	Element SubParser

	// Separator, when non-nil, matches the tokens between occurrences.
	// Whatever it produces is discarded; a separator with no following
	// element terminates the loop without failing the list.
	Separator SubParser
}

// Parse runs the repetition loop at start and materializes the result
// as a list node in u's arena. It returns the node and the end
// position: the position after the last matched element, start itself
// for a successful empty parse, or position.None iff zero elements
// matched and the rule disallows empty. On failure the returned node is
// nil and the provisional allocation is left to the arena.
//
// The node's token span deliberately tracks the scratch cursor, which
// has advanced past a trailing separator when one was matched before
// the final failing element attempt. The reported end position never
// includes that separator. Generated callers depend on this exact
// accounting; see TestListRuleTrailingSeparatorSpan.
func (r ListRule) Parse(u *ast.Unit, start position.Pos) (*ast.List, position.Pos) {
	// Committed cursor: advances only when an element matches.
	pos := position.None
	if r.AllowEmpty {
		pos = start
	}
	// Scratch cursor: additionally advances over matched separators.
	cur := start

	anchor := start
	if anchor < 1 {
		anchor = 1
	}
	node := ast.NewList(u, anchor)

	for {
		ref, end := r.Element(cur)
		if !end.IsValid() {
			break
		}
		pos = end
		cur = pos
		node.AppendChild(ref)

		if r.Separator == nil {
			continue
		}
		_, sepEnd := r.Separator(cur)
		if !sepEnd.IsValid() {
			break
		}
		cur = sepEnd
	}

	if !pos.IsValid() {
		// Zero elements and the rule disallows empty: the caller sees
		// only the sentinel. The provisional node is arena garbage.
		return nil, position.None
	}

	node.TokenStart = start
	if cur == start {
		node.TokenEnd = start
	} else {
		node.TokenEnd = cur - 1
	}
	return node, pos
}

// MatchKind returns a sub-parser that matches exactly one token of the
// given kind in ts, producing a registered Terminal node in u. It is
// the simplest element/separator a grammar compiles to; tests and the
// demo driver build list rules out of it.
func MatchKind(u *ast.Unit, ts *TokenStream, kind TokenKind) SubParser {
	return func(start position.Pos) (ast.NodeRef, position.Pos) {
		tok, ok := ts.At(start)
		if !ok || tok.Kind != kind {
			return ast.InvalidRef, position.None
		}
		ref := u.Register(ast.NewTerminal(u, start))
		return ref, start + 1
	}
}
