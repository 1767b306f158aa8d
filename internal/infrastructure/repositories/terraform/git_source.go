package terraform

import (
	"regexp"
	"strings"
)

var (
	refPattern       = regexp.MustCompile(`[?&]ref=([^&\s"]+)`)
	refParamPattern  = regexp.MustCompile(`([?&])ref=[^&\s"]+`)
	gitSourceMarkers = []string{ //nolint:gochecknoglobals // lookup table
		"github.com", "gitlab.com", "bitbucket.org", "dev.azure.com", "_git/",
	}
)

// isGitSource checks if a module source is fetched from a Git repository.
func isGitSource(source string) bool {
	if strings.HasPrefix(source, "git::") || strings.HasPrefix(source, "git@") {
		return true
	}
	for _, marker := range gitSourceMarkers {
		if strings.Contains(source, marker) {
			return true
		}
	}
	return false
}

// sourceRef returns the ref query parameter of a Git module source.
func sourceRef(source string) (string, bool) {
	if !isGitSource(source) {
		return "", false
	}
	matches := refPattern.FindStringSubmatch(source)
	if len(matches) < 2 { //nolint:mnd // full match plus one group
		return "", false
	}
	return matches[1], true
}

// withoutRef strips the ref parameter, keeping any other query parameters.
func withoutRef(source string) string {
	stripped := refParamPattern.ReplaceAllStringFunc(source, func(match string) string {
		if strings.HasPrefix(match, "?") {
			return "?"
		}
		return ""
	})
	stripped = strings.Replace(stripped, "?&", "?", 1)
	return strings.TrimSuffix(stripped, "?")
}

// withRef replaces the ref parameter of a Git module source.
func withRef(source, ref string) string {
	clean := withoutRef(source)
	if strings.Contains(clean, "?") {
		return clean + "&ref=" + ref
	}
	return clean + "?ref=" + ref
}

// tagVersion splits a Git tag into its optional "v" prefix and version.
func tagVersion(ref string) (string, string) {
	if len(ref) > 1 && ref[0] == 'v' && ref[1] >= '0' && ref[1] <= '9' {
		return "v", ref[1:]
	}
	return "", ref
}
