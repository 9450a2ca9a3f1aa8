// Package config handles the YAML suite definition consumed by the runner.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config describes one suite run: the application to acquire, engine
// parameters and the ordered list of test cases.
type Config struct {
	// Suite is the display name of the run.
	Suite string `yaml:"suite"`

	// WindowTitle is the expected top-level window title of the application
	// under test; acquisition accepts the closest match.
	WindowTitle string `yaml:"windowTitle"`

	// Driver selects the backend: "bridge" or "fake".
	Driver string `yaml:"driver"`

	// BridgeURL is the accessibility bridge agent address (bridge driver).
	BridgeURL string `yaml:"bridgeUrl"`

	// Engine timing, in milliseconds.
	TimeoutMs       int `yaml:"timeoutMs"`       // default find/wait timeout
	IntervalMs      int `yaml:"intervalMs"`      // polling interval
	LaunchTimeoutMs int `yaml:"launchTimeoutMs"` // application acquisition budget

	// DevMode leaves the application running at teardown.
	DevMode bool `yaml:"devMode"`

	// Artifacts: "on-failure" (default), "always" or "never".
	Artifacts string `yaml:"artifacts"`

	// OnError: "abort" (default, skip remaining cases after an errored
	// case) or "continue".
	OnError string `yaml:"onError"`

	// Cases is the ordered list of test cases to execute.
	Cases []CaseSpec `yaml:"cases"`
}

// CaseSpec is one case entry: a registered type plus its parameters. The
// parameters stay an opaque YAML node until the case registry decodes them
// into the concrete case struct.
type CaseSpec struct {
	Type string
	node yaml.Node
}

// UnmarshalYAML captures the case type and keeps the full mapping for later
// decoding into the concrete case type.
func (cs *CaseSpec) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}
	if head.Type == "" {
		return fmt.Errorf("case entry at line %d has no type", node.Line)
	}
	cs.Type = head.Type
	cs.node = *node
	return nil
}

// Decode unmarshals the case parameters into out.
func (cs *CaseSpec) Decode(out interface{}) error {
	return cs.node.Decode(out)
}

// Load loads a suite definition from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse loads a suite definition from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromDir looks for suite.yaml or suite.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range []string{"suite.yaml", "suite.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, fmt.Errorf("no suite.yaml found in %s", dir)
}

func (c *Config) validate() error {
	if c.WindowTitle == "" {
		return fmt.Errorf("windowTitle is required")
	}
	switch c.Artifacts {
	case "", "on-failure", "always", "never":
	default:
		return fmt.Errorf("invalid artifacts mode %q (use on-failure, always or never)", c.Artifacts)
	}
	switch c.OnError {
	case "", "abort", "continue":
	default:
		return fmt.Errorf("invalid onError policy %q (use abort or continue)", c.OnError)
	}
	return nil
}
