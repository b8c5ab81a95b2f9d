// Package reconcile computes set-difference plans for pool synchronization.
//
// Given the current live token set of a namespace and a desired set, BuildPlan
// determines which tokens must be inserted and which must be tombstoned to make
// the pool equal the desired set. The plan is purely declarative; applying it
// is the pool feature's job.
//
// Plans are deterministic: inputs are treated as sets and output slices are
// sorted, so identical inputs always produce identical plans and a plan built
// right after being applied is empty.
package reconcile
