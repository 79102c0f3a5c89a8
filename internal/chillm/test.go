package chillm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Timeout bounds per provider type class. Local checks load model weights
// from disk and can legitimately take over a minute; remote-host checks wait
// on a LAN server; hosted-API checks either answer quickly or not at all.
const (
	LocalTestTimeout  = 90 * time.Second
	RemoteTestTimeout = 60 * time.Second
	HostedTestTimeout = 30 * time.Second
)

// Verdict is the final outcome of a validation run.
type Verdict struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// typeClass buckets provider types by where their backend runs.
type typeClass int

const (
	classHosted typeClass = iota // hosted API (openai, anthropic, unknown)
	classRemote                  // remote/LAN host (lmstudio, ollama)
	classLocal                   // on-device (local, local-custom, local-zeroconfig)
)

func classOf(ptype string) typeClass {
	switch ptype {
	case "local", "local-custom", "local-zeroconfig":
		return classLocal
	case "lmstudio", "ollama":
		return classRemote
	default:
		return classHosted
	}
}

// TestTimeout returns the validation deadline for a provider type.
// Unknown types get the hosted-API (shortest) bound.
func TestTimeout(ptype string) time.Duration {
	switch classOf(ptype) {
	case classLocal:
		return LocalTestTimeout
	case classRemote:
		return RemoteTestTimeout
	default:
		return HostedTestTimeout
	}
}

// AutoOpenLog reports whether a validation run for this provider type should
// open the log modal as soon as it starts. Local providers emit long model
// loading logs worth watching live.
func AutoOpenLog(ptype string) bool {
	return classOf(ptype) == classLocal
}

// TestArgs builds the validation argv for a provider type and its current
// field values. Unknown types pass no extra arguments. The timeout is also
// passed to the command so its internal bound cannot fire before ours and
// produce a misleading truncated error.
func TestArgs(ptype string, values map[string]string, timeout time.Duration) []string {
	args := []string{
		"providers", "test",
		"--type", ptype,
		"--json",
		"--timeout", strconv.Itoa(int(timeout / time.Second)),
	}

	appendIf := func(flag, key string) {
		if v := values[key]; v != "" {
			args = append(args, flag, v)
		}
	}

	switch ptype {
	case "lmstudio", "ollama":
		appendIf("--host", "host")
		appendIf("--port", "port")
	case "openai":
		appendIf("--base-url", "base_url")
		appendIf("--api-key", "api_key")
		appendIf("--org-id", "org_id")
	case "anthropic":
		appendIf("--base-url", "base_url")
		appendIf("--api-key", "api_key")
	case "local-custom":
		appendIf("--model-path", "model_path")
	}

	return args
}

// RunTest executes a validation run and returns its verdict. Progress lines
// from the collaborator's stderr are delivered through onLine as they
// arrive. Failures of any kind (non-zero exit, timeout, malformed output)
// are folded into a failure verdict so callers have a single outcome path.
func (r *Runner) RunTest(ctx context.Context, ptype string, values map[string]string, timeout time.Duration, onLine func(string)) Verdict {
	args := TestArgs(ptype, values, timeout)

	out, err := r.RunStreaming(ctx, timeout, onLine, args...)
	if err != nil {
		var timeoutErr *TimeoutError
		if errors.As(err, &timeoutErr) {
			return Verdict{OK: false, Message: fmt.Sprintf("test timed out after %s", timeout)}
		}
		return Verdict{OK: false, Message: err.Error()}
	}

	var v Verdict
	if err := json.Unmarshal(out, &v); err != nil {
		return Verdict{OK: false, Message: "test produced no readable result"}
	}
	return v
}
