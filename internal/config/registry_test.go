package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "chi-tui") {
		t.Errorf("GetConfigDir() = %v, should contain 'chi-tui'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigDirRespectsXDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir != "/tmp/xdg-test/chi-tui" {
		t.Errorf("GetConfigDir() = %v, want /tmp/xdg-test/chi-tui", configDir)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewPreferencesDefaults(t *testing.T) {
	prefs := NewPreferences()

	if prefs.Version != 1 {
		t.Errorf("Version = %v, want 1", prefs.Version)
	}
	if prefs.Tool != "chi-llm" {
		t.Errorf("Tool = %v, want chi-llm", prefs.Tool)
	}
	if !prefs.AutoOpenLog {
		t.Error("AutoOpenLog should default to true")
	}
	if prefs.DiscoveryTimeout != 10 {
		t.Errorf("DiscoveryTimeout = %v, want 10", prefs.DiscoveryTimeout)
	}
	if prefs.ScratchPath != "" {
		t.Errorf("ScratchPath = %v, want empty", prefs.ScratchPath)
	}
}

func TestPreferencesYAMLRoundTrip(t *testing.T) {
	prefs := NewPreferences()
	prefs.ScratchPath = "/tmp/chi.tmp.json"
	prefs.DiscoveryTimeout = 20

	data, err := yaml.Marshal(prefs)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var loaded Preferences
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if loaded != *prefs {
		t.Errorf("round trip changed preferences: %+v vs %+v", loaded, *prefs)
	}
}

func TestSaveWritesHeaderAndParses(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses XDG_CONFIG_HOME to redirect the config dir")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	prefs := NewPreferences()
	prefs.Tool = "custom-chi-llm"
	if err := prefs.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if !strings.HasPrefix(string(data), "# chi-tui Preferences File") {
		t.Error("saved file should start with the explanatory header")
	}

	var loaded Preferences
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("saved file is not valid YAML: %v", err)
	}
	if loaded.Tool != "custom-chi-llm" {
		t.Errorf("Tool = %v, want custom-chi-llm", loaded.Tool)
	}
}
