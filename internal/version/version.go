// Package version guards the compatibility contract between this
// runtime and the parsers generated against it. Generated code records
// the runtime version it was produced for; Check rejects a unit before
// any parsing happens when that version falls outside the runtime's
// constraint.
package version

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"
)

// Runtime is the semantic version of this runtime library.
const Runtime = "1.2.0"

var runtimeVersion = semver.MustParse(Runtime)

// Constraint returns the constraint generated-against versions must
// satisfy: same major version, no newer than the runtime itself.
func Constraint() string {
	return fmt.Sprintf("^%d.0.0, <= %s", runtimeVersion.Major(), Runtime)
}

// Check validates the version a parser was generated against. A nil
// return means the generated code may drive this runtime.
func Check(generated string) error {
	gv, err := semver.NewVersion(generated)
	if err != nil {
		return fmt.Errorf("version: invalid generated-against version %q: %w", generated, err)
	}

	c, err := semver.NewConstraint(Constraint())
	if err != nil {
		return fmt.Errorf("version: invalid runtime constraint: %w", err)
	}

	if !c.Check(gv) {
		return fmt.Errorf("version: parser generated against %s is incompatible with runtime %s (need %s)",
			gv, Runtime, Constraint())
	}
	return nil
}
