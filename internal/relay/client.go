package relay

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// BuildClient constructs a one-shot resty client for a single relayed
// request. The timeout covers the whole lifecycle (connect + transfer),
// TLS verification is always on, and a supplied proxy applies to all
// outbound schemes. Errors here are configuration errors: they occur
// before any network I/O.
func BuildClient(proxy *ProxyConfig, timeout time.Duration) (*resty.Client, error) {
	client := resty.New().
		SetTimeout(timeout).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: false}).
		SetRetryCount(0).
		SetDoNotParseResponse(true)

	if proxy != nil && !proxy.Disabled() {
		switch proxy.Type {
		case ProxyHTTP, ProxyHTTPS, ProxySOCKS5, ProxySOCKS5H:
			proxyURL := BuildProxyURL(proxy)
			if _, err := url.Parse(proxyURL); err != nil {
				return nil, fmt.Errorf("invalid proxy URL %q: %v", proxyURL, err)
			}
			client.SetProxy(proxyURL)
		default:
			return nil, fmt.Errorf("unsupported proxy type: %s", proxy.Type)
		}
	}

	return client, nil
}
