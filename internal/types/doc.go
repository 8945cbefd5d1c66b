// Package types defines shared types used across the backend.
//
// These types describe the plugin surface exposed to the web frontend:
// service definitions, tool metadata, execution context, and results.
// They are serialized as JSON over the invoke boundary.
package types
