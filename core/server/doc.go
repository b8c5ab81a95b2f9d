// Package server holds the HTTP server configuration section.
//
// It covers the listen port, the configured master API key set used by the
// admin endpoints, and the optional per-client rate limit. Master keys live in
// configuration only; they are intentionally never written to the database.
package server
