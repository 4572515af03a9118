// Package parser implements the repetition-rule runtime of the Kestrel
// toolkit: the machinery generated parsers call to run a "list" grammar
// rule over a token stream and materialize the result as an
// arena-resident list node. It decides how repeated matches are
// accumulated and spanned, never what a rule matches — element and
// separator sub-parsers are opaque collaborators supplied by generated
// code.
package parser

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/position"
)

// TokenKind identifies a token class. Kinds are assigned by the host
// grammar; the runtime treats them as opaque.
type TokenKind int

// Token is a single lexed token as supplied by the host lexer.
type Token struct {
	Kind TokenKind
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("{Kind: %d, Text: %q}", int(t.Kind), t.Text)
}

// TokenStream is the position-addressed accessor over a unit's tokens.
// Positions are 1-based; position.None and out-of-range positions are
// never in bounds. The stream is immutable once built and outlives the
// unit's arena.
type TokenStream struct {
	tokens []Token
}

// NewTokenStream wraps a lexed token slice. The stream takes ownership
// of the slice.
func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Len returns the number of tokens.
func (ts *TokenStream) Len() int {
	return len(ts.tokens)
}

// InBounds reports whether pos addresses a token.
func (ts *TokenStream) InBounds(pos position.Pos) bool {
	return pos.IsValid() && int(pos) <= len(ts.tokens)
}

// At returns the token at pos, and false if pos is out of bounds.
func (ts *TokenStream) At(pos position.Pos) (Token, bool) {
	if !ts.InBounds(pos) {
		return Token{}, false
	}
	return ts.tokens[pos-1], true
}
