// Package pool implements the item matching core.
//
// Each namespace owns a pool of opaque tokens. A requestor asks for exactly
// one item; the matcher guarantees that a requestor holds at most one live
// item and that an item is held by at most one requestor, and that repeating
// the request returns the same prior assignment without a second write.
//
// # Matching
//
// Assignment is oldest-first and race-free without in-process locks: the claim
// is a single conditional UPDATE guarded by "still unassigned", and the
// (namespace, requestor) partial unique index catches concurrent calls for the
// same requestor. Lost races retry selection; an exhausted pool is a normal
// outcome.
//
// # Reconciliation
//
// BatchUpdate adds and tombstones tokens with a best-effort duplicate policy
// (skipped tokens are reported, never silently dropped). SyncSet diffs the
// desired token set against current live state via core/reconcile and applies
// only the difference, making it a declarative, idempotent set operation.
//
// All removal is soft deletion. Tombstoned rows keep history and free the
// token and requestor for reuse through the live-row-scoped unique indexes.
package pool
