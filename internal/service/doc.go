// Package service manages the capability plugin registry.
//
// Plugins implement the Provider interface and register at startup;
// the frontend discovers and invokes their tools through the
// /services endpoints.
package service
