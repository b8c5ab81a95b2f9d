// Package credential manages namespace-scoped API keys.
//
// A credential authorizes requests against exactly one namespace. Lookup
// failures are reported with a single generic message so callers cannot probe
// which part of (key, namespace) was wrong. The elevated operations (create,
// delete, list across namespaces) are guarded by the configured master key
// set, which lives in process configuration and is never persisted here.
//
// Credentials are soft-deleted like items: the live-row unique index lets a
// deleted key be re-created as a fresh row.
package credential
