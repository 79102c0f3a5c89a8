// Package scratch persists the provider working set.
//
// Providers are assembled and tested against a scratch document
// (chi.tmp.json) so that experiments never touch the runtime's real
// configuration. Saves preserve sibling top-level keys written by other
// tools. When the user is satisfied, WriteActiveConfig publishes a single
// provider to the location the runtime actually reads.
package scratch
