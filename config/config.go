// Package config loads the manager's default instance set and runtime
// settings from YAML. Tree names in the file are resolved against a
// caller-supplied definition lookup; the package never loads tree assets
// itself.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/behaviormesh/behaviormesh/core"
)

// Duration wraps time.Duration with YAML string parsing ("50ms", "1s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// InstanceConfig names one default tree instance.
type InstanceConfig struct {
	// ID identifies the instance for lookup and removal. May be empty.
	ID string `yaml:"id"`
	// Tree is the definition name resolved via the lookup passed to
	// Resolve. An unresolvable name yields a setup with a nil definition,
	// which AddTree then reports.
	Tree string `yaml:"tree"`
}

// Config is the YAML document describing a manager's defaults.
type Config struct {
	// TickInterval is the executor update cadence. Zero means the built-in
	// default.
	TickInterval Duration `yaml:"tick_interval"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Behaviors is the default instance set started on activation, in
	// declaration order.
	Behaviors []InstanceConfig `yaml:"behaviors"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML config document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for i, b := range c.Behaviors {
		if b.Tree == "" {
			return fmt.Errorf("behaviors[%d]: tree name must not be empty", i)
		}
	}
	return nil
}

// Resolve maps the configured behaviors to instance setups using the given
// definition lookup. Names the lookup does not know produce setups with a
// nil definition so the failure surfaces through AddTree's diagnostics
// instead of silently shrinking the default set.
func (c *Config) Resolve(lookup func(name string) *core.TreeDefinition) []core.InstanceSetup {
	setups := make([]core.InstanceSetup, 0, len(c.Behaviors))
	for _, b := range c.Behaviors {
		setups = append(setups, core.InstanceSetup{ID: b.ID, Definition: lookup(b.Tree)})
	}
	return setups
}
