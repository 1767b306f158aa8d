package entities

import (
	"slices"
	"strings"
)

// CreateRangeSpec builds a Maven range spec covering exactly the compatible
// versions, grouped by how they appear consecutively among the available
// ones. For compatible [1 3] and available [0 1 2 3 4] it returns "[1],[3]".
// Versions are matched and ordered by Maven precedence, so "1.0" matches an
// available "1" and the bounds are written as the available versions spell
// them. An empty compatible list yields "[]".
func CreateRangeSpec(compatible, available []string) string {
	if len(compatible) == 0 {
		return "[]"
	}

	wanted := make([]MavenVersion, 0, len(compatible))
	for _, raw := range compatible {
		wanted = append(wanted, ParseMavenVersion(raw))
	}
	isCompatible := func(version MavenVersion) bool {
		return slices.ContainsFunc(wanted, func(w MavenVersion) bool { return w.Compare(version) == 0 })
	}

	groups := make([]string, 0)
	var current []string
	for _, raw := range SortVersions(available) {
		if isCompatible(ParseMavenVersion(raw)) {
			current = append(current, raw)
			continue
		}
		if len(current) > 0 {
			groups = append(groups, rangeFromGroup(current))
			current = nil
		}
	}
	if len(current) > 0 {
		groups = append(groups, rangeFromGroup(current))
	}

	return strings.Join(groups, ",")
}

func rangeFromGroup(group []string) string {
	lower, upper := group[0], group[len(group)-1]
	if lower == upper {
		return "[" + lower + "]"
	}
	return "[" + lower + "," + upper + "]"
}

// SortVersions returns the versions in ascending Maven precedence. Versions
// with equal precedence ("1" and "1.0") collapse to the first one given.
func SortVersions(versions []string) []string {
	parsed := make([]MavenVersion, 0, len(versions))
	for _, raw := range versions {
		version := ParseMavenVersion(raw)
		if slices.ContainsFunc(parsed, func(seen MavenVersion) bool { return seen.Compare(version) == 0 }) {
			continue
		}
		parsed = append(parsed, version)
	}

	slices.SortStableFunc(parsed, func(a, b MavenVersion) int { return a.Compare(b) })

	sorted := make([]string, 0, len(parsed))
	for _, version := range parsed {
		sorted = append(sorted, version.String())
	}
	return sorted
}
