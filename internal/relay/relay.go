package relay

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/socraticlabs/council/backend/internal/events"
	"github.com/socraticlabs/council/backend/internal/logging"
)

// EventStreamChunk is the event name streamed chunks are emitted under.
const EventStreamChunk = "http-stream-chunk"

// Relay executes frontend-described HTTP requests, optionally through
// a proxy. It holds no per-request state; concurrent invocations are
// fully independent.
type Relay struct {
	log            *logging.Logger
	sink           events.Sink
	defaultTimeout time.Duration
}

// New creates a relay emitting stream events to the given sink.
func New(log *logging.Logger, sink events.Sink) *Relay {
	return NewWithTimeout(log, sink, DefaultTimeout)
}

// NewWithTimeout creates a relay whose requests without an explicit
// timeout fall back to the given duration instead of DefaultTimeout.
func NewWithTimeout(log *logging.Logger, sink events.Sink, timeout time.Duration) *Relay {
	if sink == nil {
		sink = events.Discard
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Relay{
		log:            log.Named("relay"),
		sink:           sink,
		defaultTimeout: timeout,
	}
}

// timeout resolves a request's effective timeout. Zero means unset:
// a literal 0 would disable the client timeout entirely.
func (r *Relay) timeout(cfg *RequestConfig) time.Duration {
	if cfg.TimeoutMs == nil || *cfg.TimeoutMs == 0 {
		return r.defaultTimeout
	}
	return time.Duration(*cfg.TimeoutMs) * time.Millisecond
}

// prepare builds the client and the outbound request. Every error
// returned here is a configuration error raised before network I/O.
func (r *Relay) prepare(ctx context.Context, cfg *RequestConfig) (*resty.Request, string, error) {
	client, err := BuildClient(cfg.Proxy, r.timeout(cfg))
	if err != nil {
		return nil, "", err
	}

	method := strings.ToUpper(cfg.Method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
	default:
		return nil, "", fmt.Errorf("unsupported HTTP method: %s", method)
	}

	req := client.R().SetContext(ctx)
	for key, value := range cfg.Headers {
		req.SetHeader(key, value)
	}
	if cfg.Body != nil {
		req.SetBody(*cfg.Body)
	}

	return req, method, nil
}

// send dispatches the prepared request by verb. Errors come back raw;
// callers classify them per path.
func send(req *resty.Request, method, url string) (*resty.Response, error) {
	switch method {
	case http.MethodGet:
		return req.Get(url)
	case http.MethodPost:
		return req.Post(url)
	case http.MethodPut:
		return req.Put(url)
	case http.MethodDelete:
		return req.Delete(url)
	case http.MethodPatch:
		return req.Patch(url)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}
}

func (r *Relay) emit(chunk StreamChunk) {
	events.Notify(r.sink, EventStreamChunk, chunk)
}

func (r *Relay) logRequest(cfg *RequestConfig, method string) {
	r.log.Debug("relaying request",
		zap.String("method", method),
		zap.String("url", cfg.URL),
		zap.Bool("proxied", cfg.Proxy != nil && !cfg.Proxy.Disabled()),
		zap.Duration("timeout", r.timeout(cfg)),
	)
}
