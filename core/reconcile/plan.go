package reconcile

import "sort"

// BuildPlan computes the set difference between the current and desired token
// sets. Duplicates in either input are collapsed; the plan operates on sets,
// so applying it and rebuilding it with the same desired input yields an
// empty plan.
func BuildPlan(current, desired []string) *Plan {
	currentSet := toSet(current)
	desiredSet := toSet(desired)

	plan := &Plan{}

	for token := range desiredSet {
		if _, ok := currentSet[token]; !ok {
			plan.ToAdd = append(plan.ToAdd, token)
		} else {
			plan.Summary.Unchanged++
		}
	}

	for token := range currentSet {
		if _, ok := desiredSet[token]; !ok {
			plan.ToRemove = append(plan.ToRemove, token)
		}
	}

	sort.Strings(plan.ToAdd)
	sort.Strings(plan.ToRemove)

	plan.Summary.Current = len(currentSet)
	plan.Summary.Desired = len(desiredSet)
	plan.Summary.Adds = len(plan.ToAdd)
	plan.Summary.Removes = len(plan.ToRemove)

	return plan
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
