package relay

import "fmt"

// BuildProxyURL formats a proxy endpoint as scheme://[user[:pass]@]host:port.
// Credentials are embedded verbatim; the frontend supplies them unescaped
// and the upstream proxies in use accept them that way.
func BuildProxyURL(p *ProxyConfig) string {
	auth := ""
	switch {
	case p.Username != nil && p.Password != nil:
		auth = fmt.Sprintf("%s:%s@", *p.Username, *p.Password)
	case p.Username != nil:
		auth = fmt.Sprintf("%s@", *p.Username)
	}
	return fmt.Sprintf("%s://%s%s:%d", p.Type, auth, p.Host, p.Port)
}
