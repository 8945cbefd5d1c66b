package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/socraticlabs/council/backend/internal/types"
)

// FileInfo represents file metadata
type FileInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	IsDir    bool      `json:"is_dir"`
	Modified time.Time `json:"modified"`
}

// Filesystem provides scoped file access confined to a root directory.
type Filesystem struct {
	root string
}

// New creates a filesystem provider rooted at root.
func New(root string) *Filesystem {
	return &Filesystem{root: root}
}

// Definition returns plugin metadata
func (f *Filesystem) Definition() types.Service {
	return types.Service{
		ID:          "filesystem",
		Name:        "Filesystem Service",
		Description: "Scoped file access under the application data directory",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"read",
			"write",
			"list",
			"delete",
		},
		Tools: []types.Tool{
			{
				ID:          "filesystem.read",
				Name:        "Read File",
				Description: "Read file contents",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "File path", Required: true},
				},
				Returns: "string",
			},
			{
				ID:          "filesystem.write",
				Name:        "Write File",
				Description: "Write data to file (overwrites existing)",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "File path", Required: true},
					{Name: "data", Type: "string", Description: "Data to write", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "filesystem.exists",
				Name:        "Check Existence",
				Description: "Check if a file or directory exists",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "File or directory path", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "filesystem.list",
				Name:        "List Directory",
				Description: "List directory entries",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Directory path", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "filesystem.delete",
				Name:        "Delete File",
				Description: "Delete a file or empty directory",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "File or directory path", Required: true},
				},
				Returns: "boolean",
			},
		},
	}
}

// Execute runs a filesystem operation
func (f *Filesystem) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "filesystem.read":
		return f.read(params)
	case "filesystem.write":
		return f.write(params)
	case "filesystem.exists":
		return f.exists(params)
	case "filesystem.list":
		return f.list(params)
	case "filesystem.delete":
		return f.delete(params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (f *Filesystem) read(params map[string]interface{}) (*types.Result, error) {
	path, err := f.resolve(params)
	if err != nil {
		return failure(err.Error())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return failure(fmt.Sprintf("failed to read file: %v", err))
	}

	return success(map[string]interface{}{"path": path, "data": string(data), "size": len(data)})
}

func (f *Filesystem) write(params map[string]interface{}) (*types.Result, error) {
	path, err := f.resolve(params)
	if err != nil {
		return failure(err.Error())
	}
	data, ok := params["data"].(string)
	if !ok {
		return failure("data parameter required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return failure(fmt.Sprintf("failed to create directory: %v", err))
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return failure(fmt.Sprintf("failed to write file: %v", err))
	}

	return success(map[string]interface{}{"written": true, "path": path, "size": len(data)})
}

func (f *Filesystem) exists(params map[string]interface{}) (*types.Result, error) {
	path, err := f.resolve(params)
	if err != nil {
		return failure(err.Error())
	}

	_, statErr := os.Stat(path)

	return success(map[string]interface{}{"path": path, "exists": statErr == nil})
}

func (f *Filesystem) list(params map[string]interface{}) (*types.Result, error) {
	path, err := f.resolve(params)
	if err != nil {
		return failure(err.Error())
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return failure(fmt.Sprintf("failed to list directory: %v", err))
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:     entry.Name(),
			Path:     filepath.Join(path, entry.Name()),
			Size:     info.Size(),
			IsDir:    entry.IsDir(),
			Modified: info.ModTime(),
		})
	}

	return success(map[string]interface{}{"path": path, "entries": files, "count": len(files)})
}

func (f *Filesystem) delete(params map[string]interface{}) (*types.Result, error) {
	path, err := f.resolve(params)
	if err != nil {
		return failure(err.Error())
	}

	if err := os.Remove(path); err != nil {
		return failure(fmt.Sprintf("failed to delete: %v", err))
	}

	return success(map[string]interface{}{"deleted": true, "path": path})
}

// resolve joins the requested path onto the root and rejects escapes.
func (f *Filesystem) resolve(params map[string]interface{}) (string, error) {
	rel, _ := params["path"].(string)

	path := filepath.Clean(filepath.Join(f.root, rel))
	if path != f.root && !strings.HasPrefix(path, f.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes data directory: %s", rel)
	}
	return path, nil
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
