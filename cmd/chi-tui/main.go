// Chi-tui is an interactive terminal editor for chi-llm provider
// configuration.
//
// It edits a scratch document of candidate providers, verifies them
// against the chi-llm CLI, and writes the chosen configuration to the
// location the runtime reads.
//
// Usage:
//
//	chi-tui [command] [flags]
//
// Running without arguments launches the interactive editor.
// See 'chi-tui --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chi-llm/chi-tui/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chi-tui",
	Short: "chi-llm Provider Configuration Editor",
	Long: `A terminal editor for chi-llm provider configuration.

Assemble providers in a scratch document, test them against the chi-llm
CLI with live progress, and publish the verified configuration for the
runtime to pick up.

If no command is specified, the interactive editor will launch.`,
	Version: version.Version,
	RunE:    runEditor,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("chi-tui " + version.Full())
	},
}
