package maven

import (
	"bytes"
	"encoding/xml"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// pomEntry is a dependency declaration located in the raw POM bytes.
type pomEntry struct {
	groupID    string
	artifactID string
	version    string
	line       int
	start      int64 // byte offset of the version text
	end        int64
}

// dependencyPaths are the element paths whose <dependency> children are
// rewritten. Plugin dependencies and profiles are left alone.
var dependencyPaths = []string{ //nolint:gochecknoglobals // lookup table
	"project/dependencies/dependency",
	"project/dependencyManagement/dependencies/dependency",
}

// scanPOM walks the token stream and records every dependency along with
// the byte span of its version text, so writes can patch the file in place.
func scanPOM(data []byte) ([]pomEntry, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var (
		stack   []string
		entries []pomEntry
		current *pomEntry
	)

	for {
		offset := decoder.InputOffset()
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse POM")
		}

		switch tok := token.(type) {
		case xml.StartElement:
			stack = append(stack, tok.Name.Local)
			if isDependencyPath(stack) {
				current = &pomEntry{}
			}
		case xml.EndElement:
			if current != nil && isDependencyPath(stack) {
				if current.version != "" {
					entries = append(entries, *current)
				}
				current = nil
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if current == nil || len(stack) < 2 {
				continue
			}
			if !isDependencyPath(stack[:len(stack)-1]) {
				continue
			}
			text := strings.TrimSpace(string(tok))
			switch stack[len(stack)-1] {
			case "groupId":
				current.groupID = text
			case "artifactId":
				current.artifactID = text
			case "version":
				current.version = text
				current.start = offset
				current.end = decoder.InputOffset()
				current.line = 1 + bytes.Count(data[:offset], []byte("\n"))
			}
		}
	}

	return entries, nil
}

func isDependencyPath(stack []string) bool {
	path := strings.Join(stack, "/")
	for _, candidate := range dependencyPaths {
		if path == candidate {
			return true
		}
	}
	return false
}

// patchPOM replaces the given version spans. Spans must not overlap.
func patchPOM(data []byte, patches map[int64]pomPatch) ([]byte, error) {
	if len(patches) == 0 {
		return data, nil
	}

	starts := make([]int64, 0, len(patches))
	for start := range patches {
		starts = append(starts, start)
	}
	slices.Sort(starts)

	var out bytes.Buffer
	var cursor int64
	for _, start := range starts {
		patch := patches[start]
		out.Write(data[cursor:start])
		if err := xml.EscapeText(&out, []byte(patch.value)); err != nil {
			return nil, errors.Wrap(err, "failed to escape version")
		}
		cursor = patch.end
	}
	out.Write(data[cursor:])
	return out.Bytes(), nil
}

type pomPatch struct {
	end   int64
	value string
}
