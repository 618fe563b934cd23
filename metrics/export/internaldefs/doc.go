// Package internaldefs exposes stable metric name and bucket definitions
// shared by exporter implementations.
//
// Counter and histogram definitions live here so that the Prometheus and
// OTel exporters always agree on names and bucket boundaries.
//
// # What this package must NOT do
//
//   - Import any exporter package.
//   - Perform I/O.
package internaldefs
