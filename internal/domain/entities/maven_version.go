package entities

import "strings"

// Maven orders qualifiers as alpha < beta < milestone < rc < snapshot < release < sp,
// with unknown qualifiers after all of them in lexical order.
var mavenQualifiers = []string{"alpha", "beta", "milestone", "rc", "snapshot", "", "sp"}

var mavenAliases = map[string]string{
	"ga":      "",
	"final":   "",
	"release": "",
	"cr":      "rc",
}

// releaseQualifier is the comparable form of the empty (release) qualifier.
var releaseQualifier = comparableQualifier("")

type mavenItemKind int

const (
	mavenInt mavenItemKind = iota
	mavenString
	mavenList
)

// mavenItem is one element of a parsed Maven version. Integers keep their
// digits without leading zeros so any length compares correctly.
type mavenItem struct {
	kind  mavenItemKind
	value string
	items []*mavenItem
}

// MavenVersion is a version ordered the way Maven's ComparableVersion
// orders it: any number of numeric segments, known qualifiers, and
// trailing zeros or release qualifiers that do not affect precedence.
type MavenVersion struct {
	raw  string
	root *mavenItem
}

// ParseMavenVersion never fails: every string is a valid Maven version.
func ParseMavenVersion(raw string) MavenVersion {
	return MavenVersion{raw: raw, root: parseMavenItems(strings.ToLower(raw))}
}

// String returns the version as it was given.
func (v MavenVersion) String() string { return v.raw }

// Compare returns -1, 0 or 1. "1", "1.0" and "1.0.0.RELEASE" compare equal.
func (v MavenVersion) Compare(other MavenVersion) int {
	return v.root.compare(other.root)
}

// CompareMavenVersions compares two raw version strings in Maven order.
func CompareMavenVersions(a, b string) int {
	return ParseMavenVersion(a).Compare(ParseMavenVersion(b))
}

func parseMavenItems(version string) *mavenItem {
	root := &mavenItem{kind: mavenList}
	list := root
	stack := []*mavenItem{root}

	push := func() {
		next := &mavenItem{kind: mavenList}
		list.items = append(list.items, next)
		list = next
		stack = append(stack, next)
	}

	isDigit := false
	start := 0
	for i := 0; i < len(version); i++ {
		c := version[i]
		switch {
		case c == '.':
			if i == start {
				list.items = append(list.items, newMavenInt("0"))
			} else {
				list.items = append(list.items, newMavenItem(isDigit, version[start:i], false))
			}
			start = i + 1
		case c == '-':
			if i == start {
				list.items = append(list.items, newMavenInt("0"))
			} else {
				list.items = append(list.items, newMavenItem(isDigit, version[start:i], false))
			}
			start = i + 1
			push()
		case c >= '0' && c <= '9':
			if !isDigit && i > start {
				list.items = append(list.items, newMavenItem(false, version[start:i], true))
				start = i
				push()
			}
			isDigit = true
		default:
			if isDigit && i > start {
				list.items = append(list.items, newMavenItem(true, version[start:i], false))
				start = i
				push()
			}
			isDigit = false
		}
	}
	if len(version) > start {
		list.items = append(list.items, newMavenItem(isDigit, version[start:], false))
	}

	for i := len(stack) - 1; i >= 0; i-- {
		stack[i].normalize()
	}
	return root
}

func newMavenInt(digits string) *mavenItem {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	return &mavenItem{kind: mavenInt, value: digits}
}

func newMavenItem(isDigit bool, value string, followedByDigit bool) *mavenItem {
	if isDigit {
		return newMavenInt(value)
	}
	if followedByDigit && len(value) == 1 {
		switch value {
		case "a":
			value = "alpha"
		case "b":
			value = "beta"
		case "m":
			value = "milestone"
		}
	}
	if alias, ok := mavenAliases[value]; ok {
		value = alias
	}
	return &mavenItem{kind: mavenString, value: value}
}

// normalize drops trailing null items ahead of the last nested list.
func (it *mavenItem) normalize() {
	for i := len(it.items) - 1; i >= 0; i-- {
		last := it.items[i]
		if last.isNull() {
			it.items = append(it.items[:i], it.items[i+1:]...)
			continue
		}
		if last.kind != mavenList {
			break
		}
	}
}

func (it *mavenItem) isNull() bool {
	switch it.kind {
	case mavenInt:
		return it.value == "0"
	case mavenString:
		return comparableQualifier(it.value) == releaseQualifier
	default:
		return len(it.items) == 0
	}
}

// compare orders it against other; a nil other stands for a missing item.
func (it *mavenItem) compare(other *mavenItem) int {
	switch it.kind {
	case mavenInt:
		if other == nil {
			if it.value == "0" {
				return 0
			}
			return 1
		}
		if other.kind != mavenInt {
			return 1
		}
		return compareDigits(it.value, other.value)
	case mavenString:
		if other == nil {
			return strings.Compare(comparableQualifier(it.value), releaseQualifier)
		}
		if other.kind != mavenString {
			return -1
		}
		return strings.Compare(comparableQualifier(it.value), comparableQualifier(other.value))
	default:
		if other == nil {
			if len(it.items) == 0 {
				return 0
			}
			return it.items[0].compare(nil)
		}
		switch other.kind {
		case mavenInt:
			return -1
		case mavenString:
			return 1
		}
		for i := 0; i < len(it.items) || i < len(other.items); i++ {
			var left, right *mavenItem
			if i < len(it.items) {
				left = it.items[i]
			}
			if i < len(other.items) {
				right = other.items[i]
			}

			var result int
			switch {
			case left == nil && right == nil:
				result = 0
			case left == nil:
				result = -right.compare(nil)
			default:
				result = left.compare(right)
			}
			if result != 0 {
				return result
			}
		}
		return 0
	}
}

func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// comparableQualifier maps known qualifiers to their rank and unknown ones
// after every known qualifier.
func comparableQualifier(qualifier string) string {
	for i, known := range mavenQualifiers {
		if known == qualifier {
			return string(rune('0' + i))
		}
	}
	return string(rune('0'+len(mavenQualifiers))) + "-" + qualifier
}
