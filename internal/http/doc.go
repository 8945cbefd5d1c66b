// Package http provides the gin handlers for the invoke surface
// consumed by the web frontend: the two relay commands, plugin
// discovery and execution, and health endpoints.
package http
