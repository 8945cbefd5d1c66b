package relay

import "time"

// Proxy types accepted from the frontend.
const (
	ProxyNone    = "none"
	ProxyHTTP    = "http"
	ProxyHTTPS   = "https"
	ProxySOCKS5  = "socks5"
	ProxySOCKS5H = "socks5h"
)

// DefaultTimeout bounds a request when the frontend supplies none.
const DefaultTimeout = 120 * time.Second

// DefaultRequestID is used for streamed requests without an explicit id.
const DefaultRequestID = "default"

// ProxyConfig describes an optional outbound proxy.
type ProxyConfig struct {
	Type     string  `json:"type"`
	Host     string  `json:"host"`
	Port     uint16  `json:"port"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Disabled reports whether the config disables proxying entirely.
// Type "none", an empty host, or port 0 all turn the proxy off.
func (p *ProxyConfig) Disabled() bool {
	return p == nil || p.Type == ProxyNone || p.Host == "" || p.Port == 0
}

// RequestConfig describes one relayed HTTP request.
type RequestConfig struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	Body      *string           `json:"body,omitempty"`
	Proxy     *ProxyConfig      `json:"proxy,omitempty"`
	TimeoutMs *uint64           `json:"timeout_ms,omitempty"`
	Stream    *bool             `json:"stream,omitempty"`
	RequestID *string           `json:"request_id,omitempty"`
}

// StreamID returns the caller-supplied request id, or DefaultRequestID.
// Concurrent streams demultiplex on this id at the event sink, so the
// caller is responsible for keeping ids distinct.
func (c *RequestConfig) StreamID() string {
	if c.RequestID == nil || *c.RequestID == "" {
		return DefaultRequestID
	}
	return *c.RequestID
}

// Response is the fully materialized reply for a non-streamed request.
type Response struct {
	Status  uint16            `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
	Error   *string           `json:"error,omitempty"`
}

// StreamChunk is one event of a streamed response. Exactly one chunk
// per streamed request carries Done=true, marking success or failure.
type StreamChunk struct {
	RequestID string  `json:"request_id"`
	Chunk     string  `json:"chunk"`
	Done      bool    `json:"done"`
	Error     *string `json:"error,omitempty"`
}
