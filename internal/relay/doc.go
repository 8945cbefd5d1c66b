// Package relay implements the proxy-aware HTTP relay exposed to the
// web frontend.
//
// The relay accepts a request description, builds an outbound client
// configured for an optional HTTP, HTTPS, SOCKS5, or SOCKS5H proxy,
// and either returns the complete response or streams the response
// body back as http-stream-chunk events through an event sink.
//
// Built on go-resty/resty. Every invocation builds its own client and
// shares no state with concurrent invocations; the configured timeout
// bounds the whole request lifecycle including body reads.
//
// Failures are reported as human-readable strings, classified by
// cause: configuration (before any network I/O), connection, timeout,
// remote status (streaming only), and body read.
package relay
