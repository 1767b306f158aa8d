package entities

import "fmt"

// BuildCommitMessage summarizes the changed constraints in a conventional
// commit subject.
func BuildCommitMessage(results []RewriteResult) string {
	var changed []RewriteResult
	for _, result := range results {
		if result.Changed() {
			changed = append(changed, result)
		}
	}

	switch len(changed) {
	case 0:
		return "chore(deps): rewrite dependency version constraints"
	case 1:
		return fmt.Sprintf("chore(deps): constrain %s from %s to %s",
			changed[0].Dependency.Coordinate(), changed[0].Original, changed[0].Constraint)
	default:
		return fmt.Sprintf("chore(deps): rewrite %d dependency version constraints", len(changed))
	}
}
