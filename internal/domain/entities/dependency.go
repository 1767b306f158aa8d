package entities

// Dependency is a declared external library requirement.
type Dependency struct {
	Group    string // Group, organization or module path
	Artifact string // Artifact name; empty when the ecosystem has a single identifier
	Version  string // Version exactly as declared
	FilePath string // Manifest where the dependency was found
	Line     int    // Line number in the manifest, 0 when unknown
}

// Coordinate returns "group:artifact", or just the group when there is no artifact.
func (d Dependency) Coordinate() string {
	if d.Artifact == "" {
		return d.Group
	}
	return d.Group + ":" + d.Artifact
}

// RewriteStatus is the per-dependency outcome of a rewrite.
type RewriteStatus string

const (
	StatusRewritten   RewriteStatus = "rewritten"
	StatusUnparseable RewriteStatus = "unparseable-left-as-is"
)

// RewriteResult pairs a dependency with its new constraint.
type RewriteResult struct {
	Dependency Dependency
	Original   string
	Constraint string
	Status     RewriteStatus
}

// Changed reports whether the constraint differs from the declared version.
func (r RewriteResult) Changed() bool {
	return r.Status == StatusRewritten && r.Constraint != r.Original
}
