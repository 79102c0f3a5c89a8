package scratch

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/chi-llm/chi-tui/internal/logging"
)

// DefaultPath is the scratch document location relative to the working
// directory. The scratch document is where providers are assembled and
// tested before the final configuration is written.
const DefaultPath = "chi.tmp.json"

// Entry is one persistent provider record.
type Entry struct {
	ID     string
	Name   string
	Type   string
	Tags   []string
	Config map[string]any
}

// Store reads and writes the provider scratch document.
// Writes are whole-file rewrites with no locking: this is a single-user
// local editor, last writer wins.
type Store struct {
	Path string
}

// NewStore creates a Store for the given path. An empty path falls back to
// DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

// Load reads the provider list and the default-provider pointer.
// A missing, empty or malformed document loads as an empty state; startup
// must never fail on scratch-file problems.
func (s *Store) Load() (entries []Entry, defaultID string, err error) {
	root := s.readRoot()

	if id, ok := root["default_provider_id"].(string); ok {
		defaultID = id
	}

	arr, ok := root["providers"].([]any)
	if !ok {
		return nil, defaultID, nil
	}

	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		e := Entry{
			ID:   stringAt(obj, "id"),
			Name: stringAt(obj, "name"),
			Type: stringAt(obj, "type"),
		}
		if e.ID == "" {
			continue
		}
		if e.Name == "" {
			e.Name = e.ID
		}
		if tags, ok := obj["tags"].([]any); ok {
			for _, t := range tags {
				if s, ok := t.(string); ok {
					e.Tags = append(e.Tags, s)
				}
			}
		}
		if cfg, ok := obj["config"].(map[string]any); ok {
			e.Config = cfg
		} else {
			e.Config = map[string]any{"type": e.Type}
		}
		entries = append(entries, e)
	}

	return entries, defaultID, nil
}

// Save writes the provider list back to the scratch document. Sibling
// top-level keys already present in the document (notably the
// default-provider pointer) are preserved by merging into the previously
// parsed document rather than overwriting it blindly.
func (s *Store) Save(entries []Entry) error {
	root := s.readRoot()

	providers := make([]any, 0, len(entries))
	for _, e := range entries {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		cfg := e.Config
		if cfg == nil {
			cfg = map[string]any{"type": e.Type}
		}
		providers = append(providers, map[string]any{
			"id":     e.ID,
			"name":   e.Name,
			"type":   e.Type,
			"tags":   tags,
			"config": cfg,
		})
	}
	root["providers"] = providers

	return s.writeRoot(root)
}

// SetDefault records the default-provider pointer, preserving the provider
// list and any other sibling keys.
func (s *Store) SetDefault(id string) error {
	root := s.readRoot()
	root["default_provider_id"] = id
	return s.writeRoot(root)
}

// readRoot parses the document into a generic map. Any read or parse
// failure yields an empty map.
func (s *Store) readRoot() map[string]any {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return map[string]any{}
	}
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil || root == nil {
		logging.Warn("scratch document unreadable, treating as empty",
			zap.String("path", s.Path),
			zap.Error(err),
		)
		return map[string]any{}
	}
	return root
}

func (s *Store) writeRoot(root map[string]any) error {
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scratch document: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write scratch document: %w", err)
	}
	return nil
}

func stringAt(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
