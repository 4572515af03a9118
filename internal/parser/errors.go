package parser

import (
	"fmt"

	"github.com/kestrel-lang/kestrel/internal/position"
)

// ParseError reports a driver-level parsing failure with the position
// it occurred at. The repetition runtime itself never returns errors —
// position.None is its only failure signal — but drivers wrap that
// sentinel into a ParseError when surfacing the failure to a user.
type ParseError struct {
	Pos     position.Pos
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Message)
}
