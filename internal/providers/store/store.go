package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/socraticlabs/council/backend/internal/types"
)

// Store provides persistent key-value storage per scope. Each scope is
// one JSON document on disk; mutations are written through immediately.
type Store struct {
	dataDir string
	mu      sync.RWMutex
	scopes  map[string]map[string]interface{}
}

// New creates a store provider rooted at dataDir.
func New(dataDir string) *Store {
	return &Store{
		dataDir: dataDir,
		scopes:  make(map[string]map[string]interface{}),
	}
}

// Definition returns plugin metadata
func (s *Store) Definition() types.Service {
	return types.Service{
		ID:          "store",
		Name:        "Store Service",
		Description: "Persistent key-value storage for the frontend",
		Category:    types.CategoryStore,
		Capabilities: []string{
			"read",
			"write",
			"delete",
			"list",
		},
		Tools: []types.Tool{
			{
				ID:          "store.set",
				Name:        "Set Value",
				Description: "Store a value by key",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Storage key", Required: true},
					{Name: "value", Type: "any", Description: "Value to store", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "store.get",
				Name:        "Get Value",
				Description: "Retrieve a value by key",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Storage key", Required: true},
				},
				Returns: "any",
			},
			{
				ID:          "store.delete",
				Name:        "Delete Value",
				Description: "Delete a value by key",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Storage key", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "store.keys",
				Name:        "List Keys",
				Description: "List all keys in this scope",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				ID:          "store.clear",
				Name:        "Clear All",
				Description: "Remove all values in this scope",
				Parameters:  []types.Parameter{},
				Returns:     "boolean",
			},
		},
	}
}

// Execute runs a store operation
func (s *Store) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	scope := "default"
	if appCtx != nil && appCtx.Scope != nil && *appCtx.Scope != "" {
		scope = *appCtx.Scope
	}
	if err := s.checkScope(scope); err != nil {
		return failure(err.Error())
	}

	switch toolID {
	case "store.set":
		return s.set(scope, params)
	case "store.get":
		return s.get(scope, params)
	case "store.delete":
		return s.delete(scope, params)
	case "store.keys":
		return s.keys(scope)
	case "store.clear":
		return s.clear(scope)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (s *Store) set(scope string, params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return failure("key parameter required")
	}
	value, ok := params["value"]
	if !ok {
		return failure("value parameter required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(scope)
	if err != nil {
		return failure(err.Error())
	}
	data[key] = value
	if err := s.persist(scope, data); err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{"set": true, "key": key})
}

func (s *Store) get(scope string, params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return failure("key parameter required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(scope)
	if err != nil {
		return failure(err.Error())
	}
	value, exists := data[key]

	return success(map[string]interface{}{"key": key, "value": value, "exists": exists})
}

func (s *Store) delete(scope string, params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return failure("key parameter required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(scope)
	if err != nil {
		return failure(err.Error())
	}
	delete(data, key)
	if err := s.persist(scope, data); err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{"deleted": true, "key": key})
}

func (s *Store) keys(scope string) (*types.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(scope)
	if err != nil {
		return failure(err.Error())
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}

	return success(map[string]interface{}{"keys": keys, "count": len(keys)})
}

func (s *Store) clear(scope string) (*types.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	empty := make(map[string]interface{})
	if err := s.persist(scope, empty); err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{"cleared": true})
}

// load returns the in-memory document for a scope, reading it from
// disk on first access. Callers hold s.mu.
func (s *Store) load(scope string) (map[string]interface{}, error) {
	if data, ok := s.scopes[scope]; ok {
		return data, nil
	}

	data := make(map[string]interface{})
	raw, err := os.ReadFile(s.path(scope))
	if err == nil {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("corrupt store file for scope %s: %v", scope, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read store: %v", err)
	}

	s.scopes[scope] = data
	return data, nil
}

func (s *Store) persist(scope string, data map[string]interface{}) error {
	s.scopes[scope] = data

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %v", err)
	}

	path := s.path(scope)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %v", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write store: %v", err)
	}
	return nil
}

// checkScope rejects scope names that would resolve outside the store
// directory once joined into a file path.
func (s *Store) checkScope(scope string) error {
	root := filepath.Join(s.dataDir, "store")
	path := filepath.Clean(filepath.Join(root, scope+".json"))
	if filepath.Dir(path) != root {
		return fmt.Errorf("scope escapes data directory: %s", scope)
	}
	return nil
}

func (s *Store) path(scope string) string {
	return filepath.Join(s.dataDir, "store", scope+".json")
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
