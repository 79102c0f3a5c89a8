package chillm

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTool is the collaborator binary name when no override is configured.
const DefaultTool = "chi-llm"

// Runner invokes the chi-llm CLI and decodes its JSON responses.
// Every external interaction of the editor goes through this contract:
// stdout carries a single JSON document, stderr carries diagnostics, and the
// process must complete within the caller-supplied timeout or be killed.
type Runner struct {
	// Tool is the binary name or path to invoke.
	Tool string

	logger *zap.Logger
}

// NewRunner creates a Runner for the given binary. An empty tool name falls
// back to DefaultTool.
func NewRunner(tool string, logger *zap.Logger) *Runner {
	if tool == "" {
		tool = DefaultTool
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Tool: tool, logger: logger}
}

// EnsureTool verifies that the collaborator binary is present and runnable.
// This is the fatal startup check: the TUI cannot function without it.
func (r *Runner) EnsureTool() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Tool, "--version")
	if err := cmd.Run(); err != nil {
		// Missing binary and a failing --version are equally unusable.
		return &PrerequisiteError{Tool: r.Tool, Err: err}
	}
	return nil
}

// RunJSON invokes the tool with the given arguments and returns its stdout.
// Non-zero exit returns an *ExecutionError carrying the captured stderr;
// exceeding the timeout kills the process and returns a *TimeoutError.
func (r *Runner) RunJSON(ctx context.Context, timeout time.Duration, args ...string) ([]byte, error) {
	return r.run(ctx, timeout, nil, args...)
}

// RunStreaming invokes the tool like RunJSON, but delivers stderr lines one
// at a time through onLine as they arrive. All onLine calls complete before
// RunStreaming returns. Stdout is still returned whole: it carries the final
// JSON document.
func (r *Runner) RunStreaming(ctx context.Context, timeout time.Duration, onLine func(string), args ...string) ([]byte, error) {
	if onLine == nil {
		onLine = func(string) {}
	}
	return r.run(ctx, timeout, onLine, args...)
}

func (r *Runner) run(ctx context.Context, timeout time.Duration, onLine func(string), args ...string) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	r.logger.Debug("invoking collaborator",
		zap.String("tool", r.Tool),
		zap.Strings("args", args),
		zap.Duration("timeout", timeout),
	)

	cmd := exec.CommandContext(runCtx, r.Tool, args...)
	configureProcessGroup(cmd)
	// Unblocks Wait after the deadline kill even if an escaped descendant
	// still holds the inherited pipes open.
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout

	var wg sync.WaitGroup
	if onLine != nil {
		stderrPipe, err := cmd.StderrPipe()
		if err != nil {
			return nil, &ExecutionError{Args: args, ExitCode: -1, Err: err}
		}
		if err := cmd.Start(); err != nil {
			return nil, &ExecutionError{Args: args, ExitCode: -1, Err: err}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			scanner := bufio.NewScanner(stderrPipe)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				line := scanner.Text()
				stderr.WriteString(line)
				stderr.WriteByte('\n')
				onLine(line)
			}
		}()

		wg.Wait()
		err = cmd.Wait()
		return r.finish(args, timeout, runCtx, &stdout, &stderr, start, err)
	}

	cmd.Stderr = &stderr
	err := cmd.Run()
	return r.finish(args, timeout, runCtx, &stdout, &stderr, start, err)
}

func (r *Runner) finish(args []string, timeout time.Duration, runCtx context.Context, stdout, stderr *bytes.Buffer, start time.Time, err error) ([]byte, error) {
	r.logger.Debug("collaborator finished",
		zap.Strings("args", args),
		zap.Duration("duration", time.Since(start)),
		zap.Int("stdout_size", stdout.Len()),
		zap.Int("stderr_size", stderr.Len()),
		zap.Error(err),
	)

	// The deadline check comes first: a killed process also reports a
	// non-zero exit, which would otherwise mask the timeout.
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, &TimeoutError{Args: args, Timeout: timeout}
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, &ExecutionError{
			Args:     args,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}

	return stdout.Bytes(), nil
}
