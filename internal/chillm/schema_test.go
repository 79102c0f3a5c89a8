package chillm

import (
	"context"
	"reflect"
	"testing"
	"time"
)

const schemaFixture = `{
  "providers": [
    {
      "type": "ollama",
      "fields": [
        {"name": "host", "type": "string", "default": "localhost", "help": "Server host"},
        {"name": "port", "type": "int", "default": 11434},
        {"name": "model", "type": "string", "required": true}
      ]
    },
    {
      "type": "local",
      "fields": [
        {"name": "quantization", "options": ["q4", "q8"], "enum": ["q8", "f16"]},
        {"name": ""},
        {"name": "threads"}
      ]
    },
    {"type": ""}
  ]
}`

func TestFetchSchemas(t *testing.T) {
	r := fakeTool(t, `cat <<'EOF'
`+schemaFixture+`
EOF`)
	catalog, err := r.FetchSchemas(context.Background())
	if err != nil {
		t.Fatalf("FetchSchemas() error = %v", err)
	}

	// Types come back sorted, empty type names dropped.
	if !reflect.DeepEqual(catalog.Types, []string{"local", "ollama"}) {
		t.Errorf("Types = %v, want [local ollama]", catalog.Types)
	}

	fields := catalog.FieldsFor("ollama")
	if len(fields) != 3 {
		t.Fatalf("ollama fields = %d, want 3", len(fields))
	}
	if fields[0].Default != "localhost" || fields[0].Help != "Server host" {
		t.Errorf("host field = %+v", fields[0])
	}
	// Numeric defaults are stringified for editing.
	if fields[1].Default != "11434" {
		t.Errorf("port default = %q, want 11434", fields[1].Default)
	}
	if !fields[2].Required {
		t.Error("model should be required")
	}

	local := catalog.FieldsFor("local")
	// Nameless field dropped.
	if len(local) != 2 {
		t.Fatalf("local fields = %d, want 2", len(local))
	}
	// Options merge across keys, order preserved, duplicates suppressed.
	if !reflect.DeepEqual(local[0].Options, []string{"q4", "q8", "f16"}) {
		t.Errorf("quantization options = %v, want [q4 q8 f16]", local[0].Options)
	}
	// Missing kind defaults to string.
	if local[1].Kind != "string" {
		t.Errorf("threads kind = %q, want string", local[1].Kind)
	}

	if catalog.FieldsFor("nope") != nil {
		t.Error("unknown type should have nil fields")
	}
}

func TestFetchSchemasMalformedPayload(t *testing.T) {
	r := fakeTool(t, `echo 'not json at all'`)
	_, err := r.FetchSchemas(context.Background())
	if err == nil {
		t.Fatal("malformed schema payload must be an error")
	}
}

func TestDiscoverModelsMalformedPayloadIsEmpty(t *testing.T) {
	r := fakeTool(t, `echo 'garbage'`)
	models, err := r.DiscoverModels(context.Background(), "ollama", nil, 5*time.Second)
	if err != nil {
		t.Fatalf("DiscoverModels() error = %v", err)
	}
	if models != nil {
		t.Errorf("models = %v, want nil for malformed payload", models)
	}
}

func TestDiscoverModels(t *testing.T) {
	r := fakeTool(t, `cat <<'EOF'
{"models": [
  {"id": "llama-3.2-1b", "downloaded": true},
  {"name": "qwen2.5-7b"},
  {"id": ""}
]}
EOF`)
	models, err := r.DiscoverModels(context.Background(), "ollama",
		map[string]string{"host": "localhost"}, 5*time.Second)
	if err != nil {
		t.Fatalf("DiscoverModels() error = %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("models = %v, want 2 entries", models)
	}
	if models[0].ID != "llama-3.2-1b" || !models[0].Downloaded {
		t.Errorf("first model = %+v", models[0])
	}
	// Name stands in when id is absent.
	if models[1].ID != "qwen2.5-7b" || models[1].Downloaded {
		t.Errorf("second model = %+v", models[1])
	}
}
