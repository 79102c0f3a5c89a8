package chillm

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Model is one discoverable model or model path for a provider.
type Model struct {
	ID         string
	Downloaded bool
}

// rawDiscoveryDoc mirrors the `providers discover-models --json` payload.
type rawDiscoveryDoc struct {
	Models []struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Downloaded bool   `json:"downloaded"`
	} `json:"models"`
}

// DiscoverModels queries the collaborator for selectable model identifiers
// for the given provider type. The query is synchronous and short; it blocks
// the render loop for its duration.
//
// A malformed payload is treated as "no results", never an error: the field
// stays editable by hand either way.
func (r *Runner) DiscoverModels(ctx context.Context, ptype string, values map[string]string, timeout time.Duration) ([]Model, error) {
	args := []string{"providers", "discover-models", "--type", ptype, "--json"}
	for _, flag := range []struct{ name, key string }{
		{"--host", "host"},
		{"--port", "port"},
		{"--base-url", "base_url"},
		{"--api-key", "api_key"},
		{"--org-id", "org_id"},
	} {
		if v := values[flag.key]; v != "" {
			args = append(args, flag.name, v)
		}
	}

	out, err := r.RunJSON(ctx, timeout, args...)
	if err != nil {
		return nil, err
	}

	var doc rawDiscoveryDoc
	if err := json.Unmarshal(out, &doc); err != nil {
		r.logger.Warn("malformed discovery payload",
			zap.String("type", ptype),
			zap.Error(err),
		)
		return nil, nil
	}

	models := make([]Model, 0, len(doc.Models))
	for _, m := range doc.Models {
		id := m.ID
		if id == "" {
			id = m.Name
		}
		if id == "" {
			continue
		}
		models = append(models, Model{ID: id, Downloaded: m.Downloaded})
	}
	return models, nil
}
