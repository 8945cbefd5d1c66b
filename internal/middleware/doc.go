// Package middleware provides gin middleware for the invoke surface:
// CORS for the frontend origin and per-IP rate limiting.
package middleware
