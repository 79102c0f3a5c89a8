package scratch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ExportTarget selects where the final configuration is written.
type ExportTarget int

const (
	// ExportProject writes .chi_llm.json in the working directory.
	ExportProject ExportTarget = iota
	// ExportGlobal writes the user-wide model configuration under the
	// cache directory.
	ExportGlobal
)

func (t ExportTarget) String() string {
	if t == ExportGlobal {
		return "global"
	}
	return "project"
}

// ExportPath resolves the output file for a target.
func ExportPath(target ExportTarget) (string, error) {
	if target == ExportProject {
		return ".chi_llm.json", nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".cache", "chi_llm", "model_config.json"), nil
}

// WriteActiveConfig writes the chosen provider's configuration in the
// format the runtime consumes. Only non-empty fields are carried over so
// the runtime falls back to its own defaults for everything unset.
func WriteActiveConfig(e Entry, target ExportTarget) (string, error) {
	path, err := ExportPath(target)
	if err != nil {
		return "", err
	}

	provider := map[string]any{"type": e.Type}
	for key, value := range e.Config {
		if key == "type" {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		provider[key] = value
	}

	doc := map[string]any{"provider": provider}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal configuration: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
