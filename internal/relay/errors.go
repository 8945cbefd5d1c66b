package relay

import (
	"errors"
	"fmt"
	"net"
)

// classifyTransportError turns a send failure into one of the
// human-readable error classes surfaced to the frontend. Connection
// problems are called out first so the user is pointed at their proxy
// settings; timeouts get their own message; anything else is generic.
func classifyTransportError(err error) error {
	var opErr *net.OpError
	if errors.As(err, &opErr) && (opErr.Op == "dial" || opErr.Op == "proxyconnect" || opErr.Op == "socks connect") {
		return fmt.Errorf("connection failed (check proxy settings): %v", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("request timed out: %v", err)
	}

	return fmt.Errorf("request failed: %v", err)
}
