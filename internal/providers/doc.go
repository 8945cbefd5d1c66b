// Package providers contains the capability plugins registered with
// the service registry: the persistent key-value store, scoped
// filesystem access, and frontend dialogs.
//
// Plugins are available to the frontend through the /services
// endpoints; the HTTP relay does not depend on any of them.
package providers
