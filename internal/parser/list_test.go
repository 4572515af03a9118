package parser

import (
	"testing"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/position"
)

const (
	kindIdent TokenKind = iota
	kindComma
)

// stream builds a token stream where "," is a comma and anything else
// an identifier.
func stream(texts ...string) *TokenStream {
	tokens := make([]Token, 0, len(texts))
	for _, s := range texts {
		kind := kindIdent
		if s == "," {
			kind = kindComma
		}
		tokens = append(tokens, Token{Kind: kind, Text: s})
	}
	return NewTokenStream(tokens)
}

func TestTokenStream(t *testing.T) {
	ts := stream("a", ",", "b")

	if ts.Len() != 3 {
		t.Errorf("Len = %d, want 3", ts.Len())
	}
	if !ts.InBounds(1) || !ts.InBounds(3) {
		t.Error("positions 1 and 3 should be in bounds")
	}
	if ts.InBounds(position.None) || ts.InBounds(4) {
		t.Error("None and past-the-end positions should be out of bounds")
	}

	tok, ok := ts.At(2)
	if !ok || tok.Kind != kindComma || tok.Text != "," {
		t.Errorf("At(2) = %v, %v", tok, ok)
	}
	if _, ok := ts.At(position.None); ok {
		t.Error("At(None) should fail")
	}
}

func TestListRuleEmptyValid(t *testing.T) {
	u := ast.NewUnit("test")
	defer u.Destroy()
	ts := stream(",") // no identifier to match

	rule := ListRule{
		AllowEmpty: true,
		Element:    MatchKind(u, ts, kindIdent),
	}

	node, end := rule.Parse(u, 1)
	if end != 1 {
		t.Fatalf("end = %v, want start position 1", end)
	}
	if node == nil {
		t.Fatal("empty-valid parse must produce a node")
	}
	if node.Len() != 0 {
		t.Errorf("Len = %d, want 0", node.Len())
	}
	if node.TokenStart != 1 || node.TokenEnd != 1 {
		t.Errorf("span = %v-%v, want 1-1", node.TokenStart, node.TokenEnd)
	}
}

func TestListRuleEmptyInvalid(t *testing.T) {
	u := ast.NewUnit("test")
	defer u.Destroy()
	ts := stream(",")

	rule := ListRule{
		AllowEmpty: false,
		Element:    MatchKind(u, ts, kindIdent),
	}

	node, end := rule.Parse(u, 1)
	if end != position.None {
		t.Errorf("end = %v, want None", end)
	}
	if node != nil {
		t.Error("failed parse must not hand out a node")
	}
}

func TestListRuleNoSeparator(t *testing.T) {
	u := ast.NewUnit("test")
	defer u.Destroy()
	ts := stream("a", "b", "c", ",")

	rule := ListRule{Element: MatchKind(u, ts, kindIdent)}

	node, end := rule.Parse(u, 1)
	if end != 4 {
		t.Fatalf("end = %v, want 4 (after third element)", end)
	}
	if node.Len() != 3 {
		t.Fatalf("Len = %d, want 3", node.Len())
	}
	// token_end is one before the end position of the last element.
	if node.TokenEnd != end-1 {
		t.Errorf("TokenEnd = %v, want %v", node.TokenEnd, end-1)
	}
	if node.TokenStart != 1 {
		t.Errorf("TokenStart = %v, want 1", node.TokenStart)
	}

	// Children resolve to the matched tokens in order.
	for i := 0; i < 3; i++ {
		el, ok := node.Child(i)
		if !ok {
			t.Fatalf("Child(%d) did not resolve", i)
		}
		want := position.Span{Start: position.Pos(i + 1), End: position.Pos(i + 1)}
		if el.Span() != want {
			t.Errorf("Child(%d) span = %v, want %v", i, el.Span(), want)
		}
	}
}

func TestListRuleSeparatorRoundTrip(t *testing.T) {
	u := ast.NewUnit("test")
	defer u.Destroy()
	ts := stream("a", ",", "b", ",", "c")

	rule := ListRule{
		Element:   MatchKind(u, ts, kindIdent),
		Separator: MatchKind(u, ts, kindComma),
	}

	node, end := rule.Parse(u, 1)
	if end != 6 {
		t.Fatalf("end = %v, want 6", end)
	}
	if node.Len() != 3 {
		t.Fatalf("Len = %d, want 3", node.Len())
	}
	// The span covers all five tokens; separators are consumed but
	// never appear among the children.
	if node.Span() != (position.Span{Start: 1, End: 5}) {
		t.Errorf("span = %v, want 1-5", node.Span())
	}
	for i, wantPos := range []position.Pos{1, 3, 5} {
		el, _ := node.Child(i)
		if el.Span().Start != wantPos {
			t.Errorf("Child(%d) at %v, want %v", i, el.Span().Start, wantPos)
		}
	}
}

// TestListRuleTrailingSeparatorSpan locks the compatibility behavior
// around a dangling separator: the reported end position reflects only
// the last element, while the node's token span was computed from the
// scratch cursor and extends over the consumed separator. The two
// disagree by exactly one token.
func TestListRuleTrailingSeparatorSpan(t *testing.T) {
	u := ast.NewUnit("test")
	defer u.Destroy()
	ts := stream("a", ",")

	rule := ListRule{
		Element:   MatchKind(u, ts, kindIdent),
		Separator: MatchKind(u, ts, kindComma),
	}

	node, end := rule.Parse(u, 1)

	// The list succeeds with one element; the dangling separator does
	// not advance the reported end position.
	if end != 2 {
		t.Fatalf("end = %v, want 2 (after the element only)", end)
	}
	if node.Len() != 1 {
		t.Fatalf("Len = %d, want 1", node.Len())
	}

	// The span, however, includes the consumed separator: TokenEnd is
	// 2 (the comma), one past what the end position alone implies.
	if node.TokenEnd != 2 {
		t.Errorf("TokenEnd = %v, want 2 (separator included)", node.TokenEnd)
	}
	impliedLast := end - 1 // last token covered per the end position
	if node.TokenEnd != impliedLast+1 {
		t.Errorf("TokenEnd = %v, want one past the element-implied last token %v",
			node.TokenEnd, impliedLast)
	}
}

func TestListRuleSingleElement(t *testing.T) {
	u := ast.NewUnit("test")
	defer u.Destroy()
	ts := stream("a")

	rule := ListRule{
		Element:   MatchKind(u, ts, kindIdent),
		Separator: MatchKind(u, ts, kindComma),
	}

	node, end := rule.Parse(u, 1)
	if end != 2 {
		t.Fatalf("end = %v, want 2", end)
	}
	if node.Span() != (position.Span{Start: 1, End: 1}) {
		t.Errorf("span = %v, want 1-1", node.Span())
	}
}

func TestListRuleMidStream(t *testing.T) {
	u := ast.NewUnit("test")
	defer u.Destroy()
	ts := stream("x", "x", "a", ",", "b")

	rule := ListRule{
		Element:   MatchKind(u, ts, kindIdent),
		Separator: MatchKind(u, ts, kindComma),
	}

	// Parsing from position 3 keeps earlier tokens out of the span.
	node, end := rule.Parse(u, 3)
	if end != 6 {
		t.Fatalf("end = %v, want 6", end)
	}
	if node.Span() != (position.Span{Start: 3, End: 5}) {
		t.Errorf("span = %v, want 3-5", node.Span())
	}
	if node.Len() != 2 {
		t.Errorf("Len = %d, want 2", node.Len())
	}
}

func TestListRuleSubParserContract(t *testing.T) {
	u := ast.NewUnit("test")
	defer u.Destroy()

	calls := []position.Pos{}
	failing := func(start position.Pos) (ast.NodeRef, position.Pos) {
		calls = append(calls, start)
		return ast.InvalidRef, position.None
	}

	rule := ListRule{AllowEmpty: true, Element: failing}
	if _, end := rule.Parse(u, 7); end != 7 {
		t.Errorf("end = %v, want 7", end)
	}
	// The element sub-parser is invoked exactly once, at the start
	// position; a failing element never triggers the separator.
	if len(calls) != 1 || calls[0] != 7 {
		t.Errorf("element invoked at %v, want exactly [7]", calls)
	}
}

func TestParseError(t *testing.T) {
	err := &ParseError{Pos: 5, Message: "expected identifier"}
	want := "parse error at 5: expected identifier"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
