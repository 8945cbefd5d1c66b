// Package config loads application configuration from environment
// variables following 12-factor conventions.
package config
