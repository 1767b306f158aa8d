package entities

import (
	"fmt"
	"strings"
)

const (
	unreleasedHeading = "## [Unreleased]"
	changedHeading    = "### Changed"
	releasePrefix     = "## ["
	bulletPrefix      = "- "
)

// BuildChangelogEntries renders one bullet per dependency whose constraint
// changed during the rewrite.
func BuildChangelogEntries(results []RewriteResult) []string {
	entries := make([]string, 0, len(results))
	for _, result := range results {
		if !result.Changed() {
			continue
		}
		entries = append(entries, fmt.Sprintf(
			"%schanged the `%s` version constraint from `%s` to `%s`",
			bulletPrefix, result.Dependency.Coordinate(), result.Original, result.Constraint,
		))
	}
	return entries
}

// InsertChangelogEntry adds entries to the "### Changed" subsection of the
// "## [Unreleased]" section of a Keep-a-Changelog document.
//
// Content without an Unreleased section is returned unchanged. A missing
// Changed subsection is created right below the Unreleased heading;
// otherwise the entries go after its last bullet.
func InsertChangelogEntry(content string, entries []string) string {
	if len(entries) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	unreleased := indexOfLine(lines, unreleasedHeading, 0, len(lines))
	if unreleased < 0 {
		return content
	}

	sectionEnd := len(lines)
	for i := unreleased + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), releasePrefix) {
			sectionEnd = i
			break
		}
	}

	changed := indexOfLine(lines, changedHeading, unreleased+1, sectionEnd)
	if changed < 0 {
		block := append([]string{"", changedHeading, ""}, entries...)
		return strings.Join(slicesInsert(lines, unreleased+1, block), "\n")
	}

	return strings.Join(slicesInsert(lines, lastBulletAfter(lines, changed, sectionEnd)+1, entries), "\n")
}

func indexOfLine(lines []string, want string, from, to int) int {
	for i := from; i < to; i++ {
		if strings.TrimSpace(lines[i]) == want {
			return i
		}
	}
	return -1
}

// lastBulletAfter returns the last bullet line of the subsection starting at
// heading, or heading itself when the subsection has no bullets yet.
func lastBulletAfter(lines []string, heading, to int) int {
	last := heading
	for i := heading + 1; i < to; i++ {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, bulletPrefix):
			last = i
		default:
			return last
		}
	}
	return last
}

func slicesInsert(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	return append(result, lines[at:]...)
}
