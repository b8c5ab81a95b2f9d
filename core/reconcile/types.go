package reconcile

// Plan contains the mutations needed to make a current token set equal a
// desired one. Ordering is deterministic (sorted) so repeated runs over the
// same inputs produce identical plans.
type Plan struct {
	// ToAdd are desired tokens not currently present.
	ToAdd []string `json:"to_add"`

	// ToRemove are current tokens not present in the desired set.
	ToRemove []string `json:"to_remove"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a plan.
type Summary struct {
	// Current is the number of distinct tokens currently live.
	Current int `json:"current"`

	// Desired is the number of distinct tokens requested.
	Desired int `json:"desired"`

	// Adds counts planned insertions.
	Adds int `json:"adds"`

	// Removes counts planned removals.
	Removes int `json:"removes"`

	// Unchanged counts tokens present in both sets.
	Unchanged int `json:"unchanged"`
}

// InSync reports whether the plan contains no mutations.
func (p *Plan) InSync() bool {
	return len(p.ToAdd) == 0 && len(p.ToRemove) == 0
}
