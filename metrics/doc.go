// Package metrics provides throughput reporting interfaces and a Prometheus exporter.
//
// # Provider
//
// Provider is an interface for retrieving the sent/received throughput of a stream.
// *stream.Stream implements it, and NewNopProvider returns a zero-valued implementation.
//
// # Collector
//
// Collector exposes registered providers as Prometheus metrics:
//   - <namespace>_bytes_total
//   - <namespace>_average_velocity_bytes
//   - <namespace>_latest_velocity_bytes
//
// Every series carries `stream` and `direction` labels. Streams are never summed together.
package metrics
