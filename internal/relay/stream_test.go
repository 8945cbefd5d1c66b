package relay_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socraticlabs/council/backend/internal/events"
	"github.com/socraticlabs/council/backend/internal/logging"
	"github.com/socraticlabs/council/backend/internal/relay"
)

// chunkRecorder captures every http-stream-chunk event emitted by a
// streamed request.
type chunkRecorder struct {
	mu     sync.Mutex
	chunks []relay.StreamChunk
}

func (r *chunkRecorder) Emit(event string, payload interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event == relay.EventStreamChunk {
		r.chunks = append(r.chunks, payload.(relay.StreamChunk))
	}
	return nil
}

func (r *chunkRecorder) recorded() []relay.StreamChunk {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]relay.StreamChunk(nil), r.chunks...)
}

func streamRelay(rec *chunkRecorder) *relay.Relay {
	return relay.New(logging.NewNop(), rec)
}

func TestStream(t *testing.T) {
	ctx := context.Background()

	t.Run("chunks arrive in order then one done event", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			flusher, ok := w.(http.Flusher)
			require.True(t, ok)
			for _, part := range []string{"a", "b", "c"} {
				fmt.Fprint(w, part)
				flusher.Flush()
				time.Sleep(20 * time.Millisecond)
			}
		}))
		defer server.Close()

		rec := &chunkRecorder{}
		err := streamRelay(rec).Stream(ctx, relay.RequestConfig{
			URL:       server.URL,
			Method:    "GET",
			RequestID: strPtr("stream-1"),
		})
		require.NoError(t, err)

		chunks := rec.recorded()
		require.Len(t, chunks, 4)
		for i, expected := range []string{"a", "b", "c"} {
			assert.Equal(t, expected, chunks[i].Chunk)
			assert.False(t, chunks[i].Done)
			assert.Nil(t, chunks[i].Error)
		}

		terminal := chunks[3]
		assert.True(t, terminal.Done)
		assert.Nil(t, terminal.Error)
		assert.Empty(t, terminal.Chunk)

		for _, chunk := range chunks {
			assert.Equal(t, "stream-1", chunk.RequestID)
		}
	})

	t.Run("non-success status emits single terminal error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, "failure")
		}))
		defer server.Close()

		rec := &chunkRecorder{}
		err := streamRelay(rec).Stream(ctx, relay.RequestConfig{
			URL:    server.URL,
			Method: "GET",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "failure")

		chunks := rec.recorded()
		require.Len(t, chunks, 1)
		assert.True(t, chunks[0].Done)
		assert.Empty(t, chunks[0].Chunk)
		require.NotNil(t, chunks[0].Error)
		assert.Contains(t, *chunks[0].Error, "500")
		assert.Contains(t, *chunks[0].Error, "failure")
		// Event and call result must agree.
		assert.Equal(t, err.Error(), *chunks[0].Error)
	})

	t.Run("send failure emits terminal error event", func(t *testing.T) {
		dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		deadURL := dead.URL
		dead.Close()

		rec := &chunkRecorder{}
		err := streamRelay(rec).Stream(ctx, relay.RequestConfig{
			URL:    deadURL,
			Method: "GET",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection failed (check proxy settings)")

		chunks := rec.recorded()
		require.Len(t, chunks, 1)
		assert.True(t, chunks[0].Done)
		require.NotNil(t, chunks[0].Error)
		assert.Equal(t, err.Error(), *chunks[0].Error)
	})

	t.Run("mid-stream failure emits partial chunks then terminal error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Promise more bytes than we send, then cut the connection.
			w.Header().Set("Content-Length", "100")
			flusher := w.(http.Flusher)
			fmt.Fprint(w, "partial")
			flusher.Flush()
			time.Sleep(20 * time.Millisecond)
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
		}))
		defer server.Close()

		rec := &chunkRecorder{}
		err := streamRelay(rec).Stream(ctx, relay.RequestConfig{
			URL:    server.URL,
			Method: "GET",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stream error")

		chunks := rec.recorded()
		require.NotEmpty(t, chunks)
		assert.Equal(t, "partial", chunks[0].Chunk)

		terminal := chunks[len(chunks)-1]
		assert.True(t, terminal.Done)
		require.NotNil(t, terminal.Error)
		assert.Equal(t, err.Error(), *terminal.Error)
	})

	t.Run("default request id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "body")
		}))
		defer server.Close()

		rec := &chunkRecorder{}
		err := streamRelay(rec).Stream(ctx, relay.RequestConfig{
			URL:    server.URL,
			Method: "GET",
		})
		require.NoError(t, err)

		for _, chunk := range rec.recorded() {
			assert.Equal(t, relay.DefaultRequestID, chunk.RequestID)
		}
	})

	t.Run("unsupported method fails without events", func(t *testing.T) {
		rec := &chunkRecorder{}
		err := streamRelay(rec).Stream(ctx, relay.RequestConfig{
			URL:    "http://localhost/",
			Method: "BREW",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported HTTP method: BREW")
		assert.Empty(t, rec.recorded())
	})

	t.Run("invalid utf8 chunks are dropped silently", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			flusher := w.(http.Flusher)
			w.Write([]byte{0xff, 0xfe, 0xfd})
			flusher.Flush()
			time.Sleep(20 * time.Millisecond)
			fmt.Fprint(w, "text")
			flusher.Flush()
		}))
		defer server.Close()

		rec := &chunkRecorder{}
		err := streamRelay(rec).Stream(ctx, relay.RequestConfig{
			URL:    server.URL,
			Method: "GET",
		})
		require.NoError(t, err)

		chunks := rec.recorded()
		require.Len(t, chunks, 2)
		assert.Equal(t, "text", chunks[0].Chunk)
		assert.True(t, chunks[1].Done)
	})

	t.Run("sink failures never abort the stream", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "body")
		}))
		defer server.Close()

		failing := events.SinkFunc(func(string, interface{}) error {
			return fmt.Errorf("no listeners")
		})
		err := relay.New(logging.NewNop(), failing).Stream(ctx, relay.RequestConfig{
			URL:    server.URL,
			Method: "GET",
		})
		assert.NoError(t, err)
	})
}
