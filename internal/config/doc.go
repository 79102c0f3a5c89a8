// Package config provides user preferences management for chi-tui.
//
// This package manages a YAML-based preferences file covering application
// behavior that is not part of any provider record: the scratch document
// location, the collaborator binary name, the log-modal auto-open policy and
// the discovery timeout. Provider records themselves live in the scratch
// document (see the scratch package), not here.
//
// # Configuration File Location
//
// The preferences file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/chi-tui/config.yaml or $HOME/.config/chi-tui/config.yaml
//   - macOS: $HOME/.config/chi-tui/config.yaml
//   - Windows: %LOCALAPPDATA%\chi-tui\config.yaml
//
// # Thread Safety
//
// The global preferences use sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
