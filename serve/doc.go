// Package serve exposes convention validation as an HTTP JSON API.
//
// The API has a single operation: POST /api/validate. The request either
// references a stored group ({"url": "...", "group": "..."}) or carries
// an attribute mapping inline ({"attributes": {...}}). Requests with
// neither are rejected with 422 before any validation runs.
//
// Store-open failures do not fail the HTTP exchange: they come back as a
// 200 response with valid=false and a descriptive top-level error string,
// so API clients handle "the store is unreachable" and "the metadata is
// invalid" through the same response shape.
//
// Each request is wrapped in an OpenTelemetry span and counted on a
// validation metric; both default to the global otel providers and are
// no-ops unless the host process installs real ones.
package serve
