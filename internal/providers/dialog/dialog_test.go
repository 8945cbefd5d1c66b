package dialog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socraticlabs/council/backend/internal/events"
	"github.com/socraticlabs/council/backend/internal/providers/dialog"
	"github.com/socraticlabs/council/backend/internal/types"
)

type sinkRecorder struct {
	mu       sync.Mutex
	requests []dialog.Request
}

func (s *sinkRecorder) Emit(event string, payload interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event == dialog.EventDialogRequest {
		s.requests = append(s.requests, payload.(dialog.Request))
	}
	return nil
}

func TestDialog(t *testing.T) {
	ctx := context.Background()

	t.Run("definition", func(t *testing.T) {
		d := dialog.New(events.Discard)
		def := d.Definition()
		assert.Equal(t, "dialog", def.ID)
		assert.Equal(t, types.CategoryDialog, def.Category)
		assert.Len(t, def.Tools, 3)
	})

	t.Run("message dialog dispatches event", func(t *testing.T) {
		rec := &sinkRecorder{}
		d := dialog.New(rec)

		result, err := d.Execute(ctx, "dialog.message", map[string]interface{}{
			"title": "Notice", "message": "session saved",
		}, nil)
		require.NoError(t, err)
		require.True(t, result.Success)
		assert.Equal(t, true, result.Data["dispatched"])
		assert.NotEmpty(t, result.Data["dialog_id"])

		require.Len(t, rec.requests, 1)
		assert.Equal(t, "message", rec.requests[0].Kind)
		assert.Equal(t, result.Data["dialog_id"], rec.requests[0].DialogID)
	})

	t.Run("message requires text", func(t *testing.T) {
		d := dialog.New(events.Discard)
		result, err := d.Execute(ctx, "dialog.message", map[string]interface{}{}, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
	})

	t.Run("open and save dialogs", func(t *testing.T) {
		rec := &sinkRecorder{}
		d := dialog.New(rec)

		for _, tool := range []string{"dialog.open", "dialog.save"} {
			result, err := d.Execute(ctx, tool, map[string]interface{}{}, nil)
			require.NoError(t, err)
			assert.True(t, result.Success)
		}
		require.Len(t, rec.requests, 2)
		assert.Equal(t, "open", rec.requests[0].Kind)
		assert.Equal(t, "save", rec.requests[1].Kind)
	})

	t.Run("dispatch survives a dead sink", func(t *testing.T) {
		failing := events.SinkFunc(func(string, interface{}) error {
			return assert.AnError
		})
		d := dialog.New(failing)
		result, err := d.Execute(ctx, "dialog.open", map[string]interface{}{}, nil)
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("unknown tool", func(t *testing.T) {
		d := dialog.New(events.Discard)
		result, err := d.Execute(ctx, "dialog.prompt", nil, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
	})
}
