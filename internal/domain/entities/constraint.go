package entities

import (
	"fmt"
	"math"
)

// BuildConstraint renders the constraint for version under policy.
// Ranges are closed-open intervals in Maven notation. Callers check
// HasUpperBound first: a segment at its maximum has no next value.
func BuildConstraint(version Version, policy ConstraintPolicy) string {
	switch policy.Kind() {
	case PolicyPatchRange:
		upper := Version{Major: version.Major, Minor: version.Minor + 1}
		return fmt.Sprintf("[%s,%s)", version, upper)
	case PolicyMinorRange:
		upper := Version{Major: version.Major + 1}
		return fmt.Sprintf("[%s,%s)", version, upper)
	case PolicyFixed:
		return policy.FixedValue()
	default:
		return version.String()
	}
}

// HasUpperBound reports whether the exclusive upper bound of a range policy
// can be represented for version.
func HasUpperBound(version Version, policy ConstraintPolicy) bool {
	switch policy.Kind() {
	case PolicyPatchRange:
		return version.Minor < math.MaxUint64
	case PolicyMinorRange:
		return version.Major < math.MaxUint64
	default:
		return true
	}
}
