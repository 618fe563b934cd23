// Package prometheus renders authkit metrics for Prometheus scrapes.
//
// [NewPrometheusExporter] accepts an [authkit.Service] and exposes an
// [http.Handler] that renders all authkit counters and histograms in
// Prometheus text exposition format. Counter names are prefixed
// authkit_*_total; the single histogram is
// authkit_token_validate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate service state.
package prometheus
