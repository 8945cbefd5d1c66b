package events

// Sink accepts named, typed events for delivery to the frontend.
type Sink interface {
	Emit(event string, payload interface{}) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(event string, payload interface{}) error

// Emit calls f(event, payload).
func (f SinkFunc) Emit(event string, payload interface{}) error {
	return f(event, payload)
}

// Discard is a sink that drops every event. Useful for tests and
// headless runs.
var Discard Sink = SinkFunc(func(string, interface{}) error { return nil })

// Notify emits on a best-effort basis, ignoring sink failures.
// Delivery problems must never surface as operation failures.
func Notify(sink Sink, event string, payload interface{}) {
	if sink == nil {
		return
	}
	_ = sink.Emit(event, payload)
}
