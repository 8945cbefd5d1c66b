package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"go.uber.org/zap"
)

const streamChunkSize = 32 * 1024

// Stream executes a request and forwards the response body to the
// event sink as it arrives. All substantive data travels through the
// sink; the return value only signals overall success or failure.
//
// Any failure after the request was sent is surfaced twice: once as a
// terminal StreamChunk and once as the returned error, with matching
// messages.
func (r *Relay) Stream(ctx context.Context, cfg RequestConfig) error {
	requestID := cfg.StreamID()

	req, method, err := r.prepare(ctx, &cfg)
	if err != nil {
		return err
	}
	r.logRequest(&cfg, method)

	resp, err := send(req, method, cfg.URL)
	if err != nil {
		return r.failStream(requestID, classifyTransportError(err))
	}
	defer resp.RawBody().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		// No partial chunks on a non-success status: the whole body
		// becomes part of the error message.
		body, _ := io.ReadAll(resp.RawBody())
		return r.failStream(requestID, fmt.Errorf("HTTP %d: %s", resp.StatusCode(), body))
	}

	buf := make([]byte, streamChunkSize)
	for {
		n, err := resp.RawBody().Read(buf)
		if n > 0 {
			// Chunks that are not valid text are dropped, not errored.
			if utf8.Valid(buf[:n]) {
				r.emit(StreamChunk{
					RequestID: requestID,
					Chunk:     string(buf[:n]),
				})
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return r.failStream(requestID, fmt.Errorf("stream error: %v", err))
		}
	}

	r.log.Debug("stream complete", zap.String("request_id", requestID))
	r.emit(StreamChunk{RequestID: requestID, Done: true})
	return nil
}

// failStream emits the terminal error event and returns the matching
// error, keeping the event and the call result in agreement.
func (r *Relay) failStream(requestID string, err error) error {
	msg := err.Error()
	r.log.Warn("stream failed",
		zap.String("request_id", requestID),
		zap.String("error", msg),
	)
	r.emit(StreamChunk{
		RequestID: requestID,
		Done:      true,
		Error:     &msg,
	})
	return err
}
