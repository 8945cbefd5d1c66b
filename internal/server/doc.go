// Package server wires the backend together: router, middleware,
// event hub, relay, and capability plugins.
//
// Routes:
//   - POST /invoke/http_request        relay, full response
//   - POST /invoke/http_request_stream relay, chunks via event bus
//   - GET  /stream                     WebSocket event bus
//   - GET  /services                   plugin discovery
//   - POST /services/execute           plugin execution
//   - GET  /health, GET /              liveness
//   - GET  /metrics                    Prometheus
//   - /debug/pprof/*                   development builds only
package server
