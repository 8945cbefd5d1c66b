package filesystem_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socraticlabs/council/backend/internal/providers/filesystem"
	"github.com/socraticlabs/council/backend/internal/types"
)

func execute(t *testing.T, f *filesystem.Filesystem, tool string, params map[string]interface{}) *types.Result {
	t.Helper()
	result, err := f.Execute(context.Background(), tool, params, nil)
	require.NoError(t, err)
	return result
}

func TestFilesystem(t *testing.T) {
	t.Run("definition", func(t *testing.T) {
		f := filesystem.New(t.TempDir())
		def := f.Definition()
		assert.Equal(t, "filesystem", def.ID)
		assert.Equal(t, types.CategoryFilesystem, def.Category)
	})

	t.Run("write read roundtrip", func(t *testing.T) {
		f := filesystem.New(t.TempDir())

		result := execute(t, f, "filesystem.write", map[string]interface{}{
			"path": "notes/session.md", "data": "# notes",
		})
		require.True(t, result.Success)

		result = execute(t, f, "filesystem.read", map[string]interface{}{
			"path": "notes/session.md",
		})
		require.True(t, result.Success)
		assert.Equal(t, "# notes", result.Data["data"])
	})

	t.Run("exists", func(t *testing.T) {
		f := filesystem.New(t.TempDir())
		execute(t, f, "filesystem.write", map[string]interface{}{"path": "a.txt", "data": "x"})

		result := execute(t, f, "filesystem.exists", map[string]interface{}{"path": "a.txt"})
		assert.Equal(t, true, result.Data["exists"])

		result = execute(t, f, "filesystem.exists", map[string]interface{}{"path": "b.txt"})
		assert.Equal(t, false, result.Data["exists"])
	})

	t.Run("list", func(t *testing.T) {
		f := filesystem.New(t.TempDir())
		execute(t, f, "filesystem.write", map[string]interface{}{"path": "one.txt", "data": "1"})
		execute(t, f, "filesystem.write", map[string]interface{}{"path": "two.txt", "data": "2"})

		result := execute(t, f, "filesystem.list", map[string]interface{}{})
		require.True(t, result.Success)
		assert.Equal(t, 2, result.Data["count"])
	})

	t.Run("delete", func(t *testing.T) {
		f := filesystem.New(t.TempDir())
		execute(t, f, "filesystem.write", map[string]interface{}{"path": "gone.txt", "data": "x"})

		result := execute(t, f, "filesystem.delete", map[string]interface{}{"path": "gone.txt"})
		require.True(t, result.Success)

		result = execute(t, f, "filesystem.exists", map[string]interface{}{"path": "gone.txt"})
		assert.Equal(t, false, result.Data["exists"])
	})

	t.Run("rejects path escape", func(t *testing.T) {
		f := filesystem.New(t.TempDir())
		result := execute(t, f, "filesystem.read", map[string]interface{}{
			"path": "../../etc/passwd",
		})
		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Contains(t, *result.Error, "escapes data directory")
	})

	t.Run("read missing file", func(t *testing.T) {
		f := filesystem.New(t.TempDir())
		result := execute(t, f, "filesystem.read", map[string]interface{}{"path": "nope.txt"})
		assert.False(t, result.Success)
	})
}
