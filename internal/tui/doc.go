// Package tui implements the terminal interface for the provider editor.
//
// AppModel coordinates the pages: a welcome menu, the provider
// list-and-form editor, the default selector, and the configuration
// writer. Provider tests run in a background session whose progress and
// verdict are drained on a 100ms tick, keeping the render loop responsive
// while the collaborator CLI works.
package tui
