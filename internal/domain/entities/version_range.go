package entities

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidRange is returned by ParseRange for malformed interval notation.
var ErrInvalidRange = errors.New("invalid version range")

// VersionRange is a single interval in Maven notation, e.g. "[1.2.3,1.3.0)".
// A nil bound is unbounded.
type VersionRange struct {
	Lower          *Version
	Upper          *Version
	LowerInclusive bool
	UpperInclusive bool
}

// ParseRange parses "[a]", "[a,b)", "(a,b]", "[a,)" or "(,b]".
func ParseRange(spec string) (VersionRange, error) {
	spec = strings.TrimSpace(spec)
	if len(spec) < 3 {
		return VersionRange{}, errors.Wrapf(ErrInvalidRange, "%q", spec)
	}

	open, closing := spec[0], spec[len(spec)-1]
	if (open != '[' && open != '(') || (closing != ']' && closing != ')') {
		return VersionRange{}, errors.Wrapf(ErrInvalidRange, "%q is not bracketed", spec)
	}
	body := spec[1 : len(spec)-1]

	if !strings.Contains(body, ",") {
		if open != '[' || closing != ']' {
			return VersionRange{}, errors.Wrapf(ErrInvalidRange, "%q: a pinned version needs [ ]", spec)
		}
		version, err := ParseVersion(body)
		if err != nil {
			return VersionRange{}, errors.Wrapf(ErrInvalidRange, "%q: %v", spec, err)
		}
		return VersionRange{Lower: &version, Upper: &version, LowerInclusive: true, UpperInclusive: true}, nil
	}

	parts := strings.Split(body, ",")
	if len(parts) != 2 {
		return VersionRange{}, errors.Wrapf(ErrInvalidRange, "%q has more than two bounds", spec)
	}

	result := VersionRange{LowerInclusive: open == '[', UpperInclusive: closing == ']'}
	var err error
	if result.Lower, err = parseBound(parts[0]); err != nil {
		return VersionRange{}, errors.Wrapf(ErrInvalidRange, "%q: %v", spec, err)
	}
	if result.Upper, err = parseBound(parts[1]); err != nil {
		return VersionRange{}, errors.Wrapf(ErrInvalidRange, "%q: %v", spec, err)
	}
	if result.Lower == nil && result.Upper == nil {
		return VersionRange{}, errors.Wrapf(ErrInvalidRange, "%q has no bounds", spec)
	}
	if result.Lower != nil && result.Upper != nil && result.Upper.LessThan(*result.Lower) {
		return VersionRange{}, errors.Wrapf(ErrInvalidRange, "%q: upper bound below lower bound", spec)
	}
	return result, nil
}

func parseBound(raw string) (*Version, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil //nolint:nilnil // an empty bound is unbounded
	}
	version, err := ParseVersion(raw)
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// Contains reports whether version lies inside the interval.
func (r VersionRange) Contains(version Version) bool {
	if r.Lower != nil {
		cmp := version.Compare(*r.Lower)
		if cmp < 0 || (cmp == 0 && !r.LowerInclusive) {
			return false
		}
	}
	if r.Upper != nil {
		cmp := version.Compare(*r.Upper)
		if cmp > 0 || (cmp == 0 && !r.UpperInclusive) {
			return false
		}
	}
	return true
}

// IsPinned reports whether the interval admits exactly one version.
func (r VersionRange) IsPinned() bool {
	return r.Lower != nil && r.Upper != nil && r.LowerInclusive && r.UpperInclusive &&
		r.Lower.Equal(*r.Upper)
}

// ComparatorString renders the interval as comma-separated comparators,
// the syntax Terraform and npm-style tools accept, e.g. ">= 1.2.3, < 1.3.0".
func (r VersionRange) ComparatorString() string {
	if r.IsPinned() {
		return "= " + r.Lower.String()
	}

	var parts []string
	if r.Lower != nil {
		op := "> "
		if r.LowerInclusive {
			op = ">= "
		}
		parts = append(parts, op+r.Lower.String())
	}
	if r.Upper != nil {
		op := "< "
		if r.UpperInclusive {
			op = "<= "
		}
		parts = append(parts, op+r.Upper.String())
	}
	return strings.Join(parts, ", ")
}

func (r VersionRange) String() string {
	if r.IsPinned() {
		return "[" + r.Lower.String() + "]"
	}

	var builder strings.Builder
	if r.LowerInclusive {
		builder.WriteByte('[')
	} else {
		builder.WriteByte('(')
	}
	if r.Lower != nil {
		builder.WriteString(r.Lower.String())
	}
	builder.WriteByte(',')
	if r.Upper != nil {
		builder.WriteString(r.Upper.String())
	}
	if r.UpperInclusive {
		builder.WriteByte(']')
	} else {
		builder.WriteByte(')')
	}
	return builder.String()
}
