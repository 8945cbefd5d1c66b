package dialog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/socraticlabs/council/backend/internal/events"
	"github.com/socraticlabs/council/backend/internal/types"
)

// EventDialogRequest is the event name dialog requests are emitted under.
const EventDialogRequest = "dialog-request"

// Request is the payload pushed to the frontend for one dialog.
type Request struct {
	DialogID string                 `json:"dialog_id"`
	Kind     string                 `json:"kind"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

// Dialog forwards dialog requests to the frontend over the event bus.
// The frontend owns presentation and answers out of band; this plugin
// only dispatches and is otherwise stateless.
type Dialog struct {
	sink events.Sink
}

// New creates a dialog provider emitting to the given sink.
func New(sink events.Sink) *Dialog {
	if sink == nil {
		sink = events.Discard
	}
	return &Dialog{sink: sink}
}

// Definition returns plugin metadata
func (d *Dialog) Definition() types.Service {
	return types.Service{
		ID:          "dialog",
		Name:        "Dialog Service",
		Description: "Native-style dialogs rendered by the frontend",
		Category:    types.CategoryDialog,
		Capabilities: []string{
			"message",
			"open",
			"save",
		},
		Tools: []types.Tool{
			{
				ID:          "dialog.message",
				Name:        "Message Dialog",
				Description: "Show a message dialog",
				Parameters: []types.Parameter{
					{Name: "title", Type: "string", Description: "Dialog title", Required: false},
					{Name: "message", Type: "string", Description: "Message text", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "dialog.open",
				Name:        "Open Dialog",
				Description: "Show a file open dialog",
				Parameters: []types.Parameter{
					{Name: "title", Type: "string", Description: "Dialog title", Required: false},
					{Name: "multiple", Type: "boolean", Description: "Allow multiple selection", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "dialog.save",
				Name:        "Save Dialog",
				Description: "Show a file save dialog",
				Parameters: []types.Parameter{
					{Name: "title", Type: "string", Description: "Dialog title", Required: false},
					{Name: "default_name", Type: "string", Description: "Suggested file name", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute dispatches a dialog request to the frontend
func (d *Dialog) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	var kind string
	switch toolID {
	case "dialog.message":
		if _, ok := params["message"].(string); !ok {
			return failure("message parameter required")
		}
		kind = "message"
	case "dialog.open":
		kind = "open"
	case "dialog.save":
		kind = "save"
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}

	req := Request{
		DialogID: uuid.NewString(),
		Kind:     kind,
		Options:  params,
	}
	events.Notify(d.sink, EventDialogRequest, req)

	return success(map[string]interface{}{
		"dispatched": true,
		"dialog_id":  req.DialogID,
		"kind":       kind,
	})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
