package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// ErrInvalidFormat is the cause of every ParseError.
var ErrInvalidFormat = errors.New("invalid version format")

// versionPattern matches MAJOR[.MINOR[.PATCH]][-PRERELEASE][+BUILD].
var versionPattern = regexp.MustCompile(
	`^([0-9]+)(?:\.([0-9]+))?(?:\.([0-9]+))?` +
		`(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?` +
		`(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`,
)

// ParseError reports a version string that could not be parsed.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse version %q: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Version is the structured form of a dependency version string.
// Build metadata is kept for display only and never affects precedence.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease []string
	Build      string
}

// ParseVersion parses raw into a Version. Missing minor and patch segments
// default to 0. Any other deviation from the accepted grammar returns a
// *ParseError wrapping ErrInvalidFormat.
func ParseVersion(raw string) (Version, error) {
	if raw == "" {
		return Version{}, &ParseError{Raw: raw, Err: errors.Wrap(ErrInvalidFormat, "empty version")}
	}

	match := versionPattern.FindStringSubmatch(raw)
	if match == nil {
		return Version{}, &ParseError{Raw: raw, Err: ErrInvalidFormat}
	}

	segments := [3]uint64{}
	for i, segment := range match[1:4] {
		if segment == "" {
			continue
		}
		value, err := strconv.ParseUint(segment, 10, 64)
		if err != nil {
			return Version{}, &ParseError{
				Raw: raw,
				Err: errors.Wrapf(ErrInvalidFormat, "segment %q is out of range", segment),
			}
		}
		segments[i] = value
	}

	version := Version{
		Major: segments[0],
		Minor: segments[1],
		Patch: segments[2],
		Build: match[5],
	}
	if match[4] != "" {
		version.Prerelease = strings.Split(match[4], ".")
	}
	return version, nil
}

// IsPrerelease reports whether the version carries a pre-release label.
func (v Version) IsPrerelease() bool { return len(v.Prerelease) > 0 }

// String returns the canonical form MAJOR.MINOR.PATCH[-PRERELEASE].
func (v Version) String() string {
	core := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.IsPrerelease() {
		return core + "-" + strings.Join(v.Prerelease, ".")
	}
	return core
}

// Compare returns -1, 0 or 1 following semantic versioning precedence.
func (v Version) Compare(other Version) int {
	return v.semver().Compare(other.semver())
}

// Equal reports equal precedence, ignoring build metadata.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// LessThan reports whether v has lower precedence than other.
func (v Version) LessThan(other Version) bool { return v.Compare(other) < 0 }

func (v Version) semver() *semver.Version {
	return semver.New(v.Major, v.Minor, v.Patch, strings.Join(v.Prerelease, "."), v.Build)
}
