// Package logging provides structured logging built on zap.
//
// Production builds emit JSON to stdout; development builds emit
// colored console output with stack traces enabled.
package logging
