// Package main is the entry point for the Council desktop backend.
//
// This process sits behind the desktop shell's webview and serves the
// web frontend over localhost:
//
//	Frontend (webview) → Backend → Remote HTTP APIs (direct or proxied)
//
// The server provides:
//   - Proxy-aware HTTP relay (full response or streamed chunks)
//   - WebSocket event bus for stream chunks and dialog requests
//   - Capability plugins: store, filesystem, dialog
//   - Rate limiting and Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -addr 127.0.0.1:8090
//
//	# Development mode (debug inspector, colored logs)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
