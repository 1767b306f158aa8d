package entities

// PolicySelector picks the policy applied to a single dependency.
type PolicySelector func(Dependency) ConstraintPolicy

// Rewrite turns every declared version into a constraint under policy.
// The output has the same length and order as deps. Versions that do not
// parse, or whose range bound would overflow a segment, are copied through
// unchanged, so the step never fails a build.
func Rewrite(deps []Dependency, policy ConstraintPolicy) []RewriteResult {
	return RewriteWith(deps, func(Dependency) ConstraintPolicy { return policy })
}

// RewriteWith is Rewrite with a policy chosen per dependency.
func RewriteWith(deps []Dependency, selectPolicy PolicySelector) []RewriteResult {
	results := make([]RewriteResult, 0, len(deps))
	for _, dep := range deps {
		results = append(results, rewriteOne(dep, selectPolicy(dep)))
	}
	return results
}

func rewriteOne(dep Dependency, policy ConstraintPolicy) RewriteResult {
	result := RewriteResult{
		Dependency: dep,
		Original:   dep.Version,
		Constraint: dep.Version,
		Status:     StatusUnparseable,
	}

	version, err := ParseVersion(dep.Version)
	if err != nil || !HasUpperBound(version, policy) {
		return result
	}

	result.Constraint = BuildConstraint(version, policy)
	result.Status = StatusRewritten
	return result
}

// RewriteSummary aggregates the outcome of a rewrite.
type RewriteSummary struct {
	Total       int
	Rewritten   int
	Changed     int
	Unparseable int
}

// Summarize counts results by status.
func Summarize(results []RewriteResult) RewriteSummary {
	summary := RewriteSummary{Total: len(results)}
	for _, result := range results {
		switch result.Status {
		case StatusRewritten:
			summary.Rewritten++
			if result.Changed() {
				summary.Changed++
			}
		case StatusUnparseable:
			summary.Unparseable++
		}
	}
	return summary
}
