package types

// Category represents plugin categories
type Category string

const (
	CategoryStore      Category = "store"
	CategoryFilesystem Category = "filesystem"
	CategoryDialog     Category = "dialog"
	CategoryHTTP       Category = "http"
)

// Service represents a plugin definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a plugin tool
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Context provides execution context for plugin calls
type Context struct {
	WindowID *string `json:"window_id,omitempty"`
	Scope    *string `json:"scope,omitempty"`
}

// Result represents a plugin execution result
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}
