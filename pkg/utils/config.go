package utils

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of one generation run
type Config struct {
	Circuit       string   `yaml:"circuit"`        // Netlist file
	FaultNode     string   `yaml:"fault_node"`     // Signal under test
	FaultType     string   `yaml:"fault_type"`     // SA0 or SA1
	Output        string   `yaml:"output"`         // Result file
	Inputs        []string `yaml:"inputs"`         // Ordered primary inputs
	PrimaryOutput string   `yaml:"primary_output"` // Signal written as the result
	Workers       int      `yaml:"workers"`
	Strict        bool     `yaml:"strict"`
	DetectingOnly bool     `yaml:"detecting_only"` // Only write vectors that expose the fault

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	Level string `yaml:"level"` // error, warning, info, debug, trace
	File  string `yaml:"file"`  // Empty for stdout
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		FaultType:     "SA1",
		Output:        "tests.txt",
		Inputs:        []string{"A", "B", "C", "D"},
		PrimaryOutput: "Z",
		Workers:       1,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML config file over the defaults
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that have no usable zero value
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("config: at least one primary input is required")
	}
	for _, in := range c.Inputs {
		if strings.TrimSpace(in) == "" || strings.ContainsAny(in, " \t,") {
			return fmt.Errorf("config: bad input name %q", in)
		}
	}
	if c.PrimaryOutput == "" {
		return fmt.Errorf("config: primary_output is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ParseInputList splits a comma-separated list of input names
func ParseInputList(list string) []string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
