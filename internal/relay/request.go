package relay

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Do executes a request and fully materializes the response. The
// returned error, if any, is one of the relay's human-readable error
// classes; the Response is only valid when the error is nil.
func (r *Relay) Do(ctx context.Context, cfg RequestConfig) (*Response, error) {
	req, method, err := r.prepare(ctx, &cfg)
	if err != nil {
		return nil, err
	}
	r.logRequest(&cfg, method)

	resp, err := send(req, method, cfg.URL)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.RawBody().Close()

	body, err := io.ReadAll(resp.RawBody())
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	r.log.Debug("request complete",
		zap.Int("status", resp.StatusCode()),
		zap.Int("body_bytes", len(body)),
	)

	return &Response{
		Status:  uint16(resp.StatusCode()),
		Headers: textHeaders(resp.Header()),
		Body:    string(body),
	}, nil
}

// textHeaders copies response headers whose value is valid text.
// Non-text values are dropped silently rather than failing the request.
func textHeaders(header map[string][]string) map[string]string {
	headers := make(map[string]string, len(header))
	for key, values := range header {
		for _, value := range values {
			if utf8.ValidString(value) {
				headers[key] = value
			}
		}
	}
	return headers
}
