package entities

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// PolicyKind selects how a declared version is turned into a constraint.
type PolicyKind int

const (
	// PolicyExact keeps the declared version, formatted canonically.
	PolicyExact PolicyKind = iota
	// PolicyPatchRange allows any patch of the declared major.minor.
	PolicyPatchRange
	// PolicyMinorRange allows any minor.patch of the declared major.
	PolicyMinorRange
	// PolicyFixed replaces every version with a literal value.
	PolicyFixed
)

// ErrUnknownPolicy is returned by ParsePolicy for an unrecognized name.
var ErrUnknownPolicy = errors.New("unknown constraint policy")

var policyNames = map[PolicyKind]string{ //nolint:gochecknoglobals // lookup table
	PolicyExact:      "exact",
	PolicyPatchRange: "patch",
	PolicyMinorRange: "minor",
	PolicyFixed:      "fixed",
}

func (k PolicyKind) String() string {
	if name, ok := policyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ConstraintPolicy is an immutable widening rule, built once per session.
type ConstraintPolicy struct {
	kind  PolicyKind
	fixed string
}

// Exact returns the policy that leaves versions unchanged.
func Exact() ConstraintPolicy { return ConstraintPolicy{kind: PolicyExact} }

// PatchRange returns the policy allowing patch upgrades.
func PatchRange() ConstraintPolicy { return ConstraintPolicy{kind: PolicyPatchRange} }

// MinorRange returns the policy allowing minor and patch upgrades.
func MinorRange() ConstraintPolicy { return ConstraintPolicy{kind: PolicyMinorRange} }

// Fixed returns the policy that pins every dependency to value, e.g. a
// sentinel later substituted by another tool in the pipeline.
func Fixed(value string) ConstraintPolicy {
	return ConstraintPolicy{kind: PolicyFixed, fixed: value}
}

// ParsePolicy builds a policy from its configuration name. The fixed value
// is only consulted for "fixed", where it must not be empty.
func ParsePolicy(name, fixed string) (ConstraintPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exact":
		return Exact(), nil
	case "patch", "patch-range":
		return PatchRange(), nil
	case "minor", "minor-range":
		return MinorRange(), nil
	case "fixed":
		if fixed == "" {
			return ConstraintPolicy{}, errors.New("fixed policy requires a value")
		}
		return Fixed(fixed), nil
	default:
		return ConstraintPolicy{}, errors.Wrapf(ErrUnknownPolicy, "%q", name)
	}
}

// Kind returns the widening strategy.
func (p ConstraintPolicy) Kind() PolicyKind { return p.kind }

// FixedValue returns the literal used by the fixed policy.
func (p ConstraintPolicy) FixedValue() string { return p.fixed }

func (p ConstraintPolicy) String() string {
	if p.kind == PolicyFixed {
		return p.kind.String() + "(" + p.fixed + ")"
	}
	return p.kind.String()
}
