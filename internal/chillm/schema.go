package chillm

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// SchemaTimeout bounds the schema fetch. The schema is served from static
// data inside chi-llm, so this is generous.
const SchemaTimeout = 5 * time.Second

// FieldSchema describes one editable field of a provider type.
// Immutable once fetched.
type FieldSchema struct {
	Name     string
	Kind     string // "string", "int", "secret", ...
	Required bool
	Default  string
	Help     string
	Options  []string // enumerated legal values, nil when free-form
}

// SchemaCatalog maps provider type names to their ordered field schemas.
type SchemaCatalog struct {
	// Types is the sorted list of known provider type names.
	Types []string
	// Fields holds the ordered field descriptors per type.
	Fields map[string][]FieldSchema
}

// FieldsFor returns the field schemas for a provider type, or nil when the
// type is unknown.
func (c *SchemaCatalog) FieldsFor(ptype string) []FieldSchema {
	if c == nil {
		return nil
	}
	return c.Fields[ptype]
}

// rawSchemaDoc mirrors the `providers schema --json` payload.
type rawSchemaDoc struct {
	Providers []struct {
		Type   string            `json:"type"`
		Fields []json.RawMessage `json:"fields"`
	} `json:"providers"`
}

// FetchSchemas fetches the provider schema catalog from the collaborator.
// A fetch failure is a hard error for the providers page; callers surface it
// and fall back to a schema-less state rather than crashing.
func (r *Runner) FetchSchemas(ctx context.Context) (*SchemaCatalog, error) {
	args := []string{"providers", "schema", "--json"}
	out, err := r.RunJSON(ctx, SchemaTimeout, args...)
	if err != nil {
		return nil, err
	}

	var doc rawSchemaDoc
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, &ParseError{Args: args, Output: string(out), Err: err}
	}

	catalog := &SchemaCatalog{Fields: make(map[string][]FieldSchema)}
	for _, prov := range doc.Providers {
		if prov.Type == "" {
			continue
		}
		catalog.Types = append(catalog.Types, prov.Type)
		fields := make([]FieldSchema, 0, len(prov.Fields))
		for _, raw := range prov.Fields {
			if fs, ok := parseFieldSchema(raw); ok {
				fields = append(fields, fs)
			}
		}
		catalog.Fields[prov.Type] = fields
	}
	sort.Strings(catalog.Types)

	return catalog, nil
}

// parseFieldSchema decodes one field descriptor tolerantly: unknown keys are
// ignored, non-string defaults are stringified, and enumerated options are
// accepted under any of several historical keys.
func parseFieldSchema(raw json.RawMessage) (FieldSchema, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return FieldSchema{}, false
	}

	fs := FieldSchema{
		Name:     jsonString(obj["name"]),
		Kind:     jsonString(obj["type"]),
		Help:     jsonString(obj["help"]),
		Required: jsonBool(obj["required"]),
		Default:  stringifyValue(obj["default"]),
		Options:  collectOptions(obj),
	}
	if fs.Name == "" {
		return FieldSchema{}, false
	}
	if fs.Kind == "" {
		fs.Kind = "string"
	}
	return fs, true
}

// optionKeys are the accepted spellings for enumerated field values in the
// raw schema payload.
var optionKeys = []string{"options", "enum", "choices"}

// collectOptions gathers enumerated values from any accepted key, preserving
// order and suppressing duplicates across keys.
func collectOptions(obj map[string]json.RawMessage) []string {
	var opts []string
	seen := make(map[string]bool)
	for _, key := range optionKeys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var arr []any
		if err := json.Unmarshal(raw, &arr); err != nil {
			continue
		}
		for _, it := range arr {
			s, ok := it.(string)
			if !ok || seen[s] {
				continue
			}
			seen[s] = true
			opts = append(opts, s)
		}
	}
	return opts
}

func jsonString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func jsonBool(raw json.RawMessage) bool {
	if raw == nil {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

// stringifyValue renders a default of any JSON type as editable text:
// strings as-is, numbers and booleans via their JSON encoding.
func stringifyValue(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}
