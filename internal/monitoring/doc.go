// Package monitoring collects Prometheus metrics for the invoke
// surface and the HTTP relay, exposed at /metrics.
package monitoring
