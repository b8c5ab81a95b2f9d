// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - Auth: Validates namespace-scoped API keys against the credential store,
//     and master API keys against the configured set, to protect endpoints.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - RateLimit: Applies a per-client token-bucket rate limit.
//
// These middleware components are designed to be registered globally or
// per-route group in the main application setup.
package middleware
