// Package position provides token position tracking for the Kestrel
// runtime. Generated parsers address the token stream through opaque,
// totally ordered positions; the distinguished None sentinel signals
// "no match here" and is the sole failure channel of the parsing core.
package position

import "fmt"

// Pos is a 1-based index into a compilation unit's token stream.
// The zero value is None, the invalid sentinel.
type Pos int

// None is the invalid position. A sub-parser that fails to match
// reports None as its end position.
const None Pos = 0

// IsValid returns true if the position addresses a token.
func (p Pos) IsValid() bool {
	return p > None
}

// Before returns true if this position comes before other.
func (p Pos) Before(other Pos) bool {
	return p < other
}

// After returns true if this position comes after other.
func (p Pos) After(other Pos) bool {
	return p > other
}

// String returns a string representation of the position.
func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d", int(p))
}

// Span represents an inclusive range of token positions.
type Span struct {
	Start Pos // First token covered (inclusive)
	End   Pos // Last token covered (inclusive)
}

// IsValid returns true if both ends are valid and ordered.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.Start <= s.End
}

// Len returns the number of tokens the span covers, 0 if invalid.
func (s Span) Len() int {
	if !s.IsValid() {
		return 0
	}
	return int(s.End-s.Start) + 1
}

// Contains returns true if the span contains the given position.
func (s Span) Contains(pos Pos) bool {
	if !s.IsValid() || !pos.IsValid() {
		return false
	}
	return s.Start <= pos && pos <= s.End
}

// Union returns a span that encompasses both this span and other.
func (s Span) Union(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}
	start := s.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := s.End
	if other.End.After(end) {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// String returns a string representation of the span.
func (s Span) String() string {
	if !s.IsValid() {
		return "-"
	}
	if s.Start == s.End {
		return fmt.Sprintf("%d", int(s.Start))
	}
	return fmt.Sprintf("%d-%d", int(s.Start), int(s.End))
}
