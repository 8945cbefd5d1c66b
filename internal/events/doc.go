// Package events provides the event bus between the backend and the
// web frontend.
//
// Components that need to push asynchronous notifications depend only
// on the Sink interface; the Hub implementation fans emitted events out
// to every connected WebSocket client as JSON frames.
//
// Emission is best-effort: a sink with no listeners, or a client that
// cannot keep up, never fails the emitting operation.
//
// Frame format (Server → Client):
//
//	{"event": "http-stream-chunk", "payload": {...}}
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
package events
