package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chi-llm/chi-tui/internal/chillm"
	"github.com/chi-llm/chi-tui/internal/config"
	"github.com/chi-llm/chi-tui/internal/logging"
	"github.com/chi-llm/chi-tui/internal/scratch"
	"github.com/chi-llm/chi-tui/internal/tui"
)

// Editor flags
var (
	scratchPath string
	toolName    string
	logLevel    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&scratchPath, "scratch", "", "Scratch document path (default "+scratch.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&toolName, "tool", "", "chi-llm binary name or path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); also via "+logging.LogLevelEnvVar)
}

func runEditor(cmd *cobra.Command, args []string) error {
	if logLevel != "" {
		if err := logging.Initialize(logLevel); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
	} else if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	prefs, err := config.LoadPreferences()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	// Flags override saved preferences for this invocation only.
	tool := prefs.Tool
	if toolName != "" {
		tool = toolName
	}
	path := prefs.ScratchPath
	if scratchPath != "" {
		path = scratchPath
	}

	runner := chillm.NewRunner(tool, logging.GetLogger())
	if err := runner.EnsureTool(); err != nil {
		var prereq *chillm.PrerequisiteError
		if errors.As(err, &prereq) {
			fmt.Fprintln(os.Stderr, prereq.Error())
			os.Exit(1)
		}
		return fmt.Errorf("chi-llm check failed: %w", err)
	}

	store := scratch.NewStore(path)
	model := tui.NewAppModel(runner, store, prefs)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}
