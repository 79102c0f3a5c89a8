package config

// Preferences represents the entire user preferences file.
type Preferences struct {
	Version int `yaml:"version"`

	// ScratchPath overrides the location of the provider scratch document.
	// Empty means the default (chi.tmp.json in the working directory).
	ScratchPath string `yaml:"scratch_path,omitempty"`

	// Tool is the name or path of the chi-llm CLI binary.
	Tool string `yaml:"tool,omitempty"`

	// AutoOpenLog controls whether the log modal opens automatically when a
	// validation run for a local provider starts. Local providers load model
	// weights on startup and produce long, informative logs.
	AutoOpenLog bool `yaml:"auto_open_log"`

	// DiscoveryTimeout is the timeout in seconds for synchronous model
	// discovery queries.
	DiscoveryTimeout int `yaml:"discovery_timeout"`
}

// NewPreferences creates Preferences with default values.
func NewPreferences() *Preferences {
	return &Preferences{
		Version:          1,
		Tool:             "chi-llm",
		AutoOpenLog:      true,
		DiscoveryTimeout: 10,
	}
}
