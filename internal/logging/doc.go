// Package logging provides structured logging for chi-tui using zap.
//
// Logging is silent by default. The TUI draws to the terminal, so any
// unsolicited output would corrupt the display; verbosity is opt-in via the
// CHI_TUI_LOG_LEVEL environment variable (debug, info, warn, error) and is
// written to stderr, which can be redirected to a file while debugging:
//
//	CHI_TUI_LOG_LEVEL=debug chi-tui 2>chi-tui.log
package logging
