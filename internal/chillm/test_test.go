package chillm

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestTestTimeoutClasses(t *testing.T) {
	tests := []struct {
		ptype string
		want  time.Duration
	}{
		{"local", LocalTestTimeout},
		{"local-custom", LocalTestTimeout},
		{"local-zeroconfig", LocalTestTimeout},
		{"lmstudio", RemoteTestTimeout},
		{"ollama", RemoteTestTimeout},
		{"openai", HostedTestTimeout},
		{"anthropic", HostedTestTimeout},
		{"something-new", HostedTestTimeout},
	}
	for _, tt := range tests {
		if got := TestTimeout(tt.ptype); got != tt.want {
			t.Errorf("TestTimeout(%q) = %s, want %s", tt.ptype, got, tt.want)
		}
	}
}

func TestAutoOpenLogOnlyForLocal(t *testing.T) {
	for _, ptype := range []string{"local", "local-custom", "local-zeroconfig"} {
		if !AutoOpenLog(ptype) {
			t.Errorf("AutoOpenLog(%q) = false, want true", ptype)
		}
	}
	for _, ptype := range []string{"ollama", "lmstudio", "openai", "anthropic", "mystery"} {
		if AutoOpenLog(ptype) {
			t.Errorf("AutoOpenLog(%q) = true, want false", ptype)
		}
	}
}

func TestTestArgsMapping(t *testing.T) {
	values := map[string]string{
		"host":       "10.0.0.5",
		"port":       "11434",
		"base_url":   "https://api.example.com",
		"api_key":    "sk-test",
		"org_id":     "org-1",
		"model_path": "/models/foo.gguf",
	}

	tests := []struct {
		ptype string
		extra []string
	}{
		{"ollama", []string{"--host", "10.0.0.5", "--port", "11434"}},
		{"lmstudio", []string{"--host", "10.0.0.5", "--port", "11434"}},
		{"openai", []string{"--base-url", "https://api.example.com", "--api-key", "sk-test", "--org-id", "org-1"}},
		{"anthropic", []string{"--base-url", "https://api.example.com", "--api-key", "sk-test"}},
		{"local-custom", []string{"--model-path", "/models/foo.gguf"}},
		{"local", nil},
		{"unknown-type", nil},
	}
	for _, tt := range tests {
		want := append([]string{
			"providers", "test",
			"--type", tt.ptype,
			"--json",
			"--timeout", "30",
		}, tt.extra...)
		got := TestArgs(tt.ptype, values, 30*time.Second)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("TestArgs(%q) = %v, want %v", tt.ptype, got, want)
		}
	}
}

func TestTestArgsSkipsEmptyValues(t *testing.T) {
	got := TestArgs("ollama", map[string]string{"host": "localhost", "port": ""}, 60*time.Second)
	for _, arg := range got {
		if arg == "--port" {
			t.Errorf("empty port leaked into args: %v", got)
		}
	}
}

func TestRunTestFoldsFailures(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		r := fakeTool(t, `sleep 30`)
		v := r.RunTest(context.Background(), "local", nil, 200*time.Millisecond, nil)
		if v.OK {
			t.Fatal("timed-out run must fail")
		}
		if !strings.Contains(v.Message, "timed out") {
			t.Errorf("message = %q, want timeout indication", v.Message)
		}
	})

	t.Run("nonzero exit", func(t *testing.T) {
		r := fakeTool(t, `echo "boom" >&2; exit 1`)
		v := r.RunTest(context.Background(), "openai", nil, 5*time.Second, nil)
		if v.OK {
			t.Fatal("failed run must fail")
		}
		if !strings.Contains(v.Message, "boom") {
			t.Errorf("message = %q, want the stderr detail", v.Message)
		}
	})

	t.Run("unreadable output", func(t *testing.T) {
		r := fakeTool(t, `echo 'not json'`)
		v := r.RunTest(context.Background(), "openai", nil, 5*time.Second, nil)
		if v.OK {
			t.Fatal("garbled run must fail")
		}
		if !strings.Contains(v.Message, "no readable result") {
			t.Errorf("message = %q", v.Message)
		}
	})

	t.Run("verdict passes through", func(t *testing.T) {
		r := fakeTool(t, `
echo "checking" >&2
echo '{"ok": true, "message": "all good"}'
`)
		var lines []string
		v := r.RunTest(context.Background(), "ollama", nil, 5*time.Second, func(l string) {
			lines = append(lines, l)
		})
		if !v.OK || v.Message != "all good" {
			t.Errorf("verdict = %+v, want ok/all good", v)
		}
		if len(lines) != 1 || lines[0] != "checking" {
			t.Errorf("progress lines = %v", lines)
		}
	})
}
