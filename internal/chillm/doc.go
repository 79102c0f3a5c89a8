// Package chillm implements the command contract with the chi-llm CLI.
//
// chi-tui never talks to model backends itself. Provider schemas, model
// discovery and connectivity validation are all delegated to the external
// chi-llm binary, invoked as:
//
//	chi-llm <subcommand> [--flag value]...
//
// Every invocation must complete within a caller-supplied timeout or the
// child process is killed. On success, stdout carries a single JSON
// document; stderr carries human-readable diagnostics, which validation
// runs stream back line by line for live display. Non-zero exit converts
// to an *ExecutionError carrying the captured stderr.
package chillm
