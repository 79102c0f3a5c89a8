package chillm

import (
	"fmt"
	"strings"
	"time"
)

// ExecutionError represents a failure of a chi-llm invocation.
// This occurs when the command exits non-zero or cannot be started.
type ExecutionError struct {
	// Args are the arguments the command was invoked with
	Args []string
	// ExitCode is the process exit code (-1 if it never started)
	ExitCode int
	// Stderr is the captured standard-error text
	Stderr string
	// Underlying error if any
	Err error
}

func (e *ExecutionError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	return fmt.Sprintf("chi-llm %s failed (exit code %d): %s",
		strings.Join(e.Args, " "), e.ExitCode, detail)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// TimeoutError represents a chi-llm invocation exceeding its deadline.
// The child process is forcibly terminated before this is returned.
type TimeoutError struct {
	// Args are the arguments the command was invoked with
	Args []string
	// Timeout is the deadline that was exceeded
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("chi-llm %s timed out after %s",
		strings.Join(e.Args, " "), e.Timeout)
}

// ParseError represents malformed output from a chi-llm invocation that
// exited successfully but did not print the expected JSON document.
type ParseError struct {
	// Args are the arguments the command was invoked with
	Args []string
	// Output is the stdout text that failed to parse
	Output string
	// Underlying error
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse chi-llm %s output: %v",
		strings.Join(e.Args, " "), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PrerequisiteError represents a missing chi-llm binary at startup.
type PrerequisiteError struct {
	// Tool is the binary name that was looked up
	Tool string
	// Underlying error
	Err error
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("required CLI %q not found in PATH\n"+
		"Install: pip install -e .[full] (inside the chi_llm repo) or pip install chi-llm",
		e.Tool)
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}
