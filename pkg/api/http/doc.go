// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - Liveness and readiness probes (with runtime readiness toggling)
//   - Configuration and pod-metadata introspection
//   - Crash and CPU-stress endpoints for orchestrator exercises
//   - A key-value proxy and a shared visit counter over the external store
//   - Cookie-session login/logout/me
//   - Prometheus metrics
package http
