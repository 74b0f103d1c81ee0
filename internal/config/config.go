// Package config loads the YAML configuration of the programs shipped with
// the module. Libraries take functional options instead; DispatchOptions and
// Logger bridge the two.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hupe1980/macro/dispatch"
	"github.com/hupe1980/macro/logging"
	"github.com/hupe1980/macro/param"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
//
// Example:
//
//	logging:
//	  level: debug
//	  format: text
//	dispatch:
//	  max_chain_length: 4
//	  format_policy: polymorphic
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Dispatch DispatchConfig `yaml:"dispatch"`
}

// LoggingConfig selects the structured logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level logging.LogLevel `yaml:"level"`
	// Format is json, text or auto (text on a terminal, JSON otherwise).
	Format string `yaml:"format"`
	// AddSource attaches the caller's file and line to every entry.
	AddSource bool `yaml:"add_source"`
}

// DispatchConfig tunes the dispatchers created by a program.
type DispatchConfig struct {
	// MaxChainLength bounds polymorphic inline caches; zero means unbounded.
	MaxChainLength int `yaml:"max_chain_length"`
	// FormatPolicy is the policy of the format string position of the
	// formatter example.
	FormatPolicy param.Policy `yaml:"format_policy"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  logging.LogLevelInfo,
			Format: logging.FormatAuto,
		},
		Dispatch: DispatchConfig{
			MaxChainLength: 8,
			FormatPolicy:   param.PolicyPolymorphic,
		},
	}
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses YAML content over the defaults and validates the result.
// Keys that are absent keep their default value; unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Format) {
	case logging.FormatJSON, logging.FormatText, logging.FormatAuto:
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	if c.Logging.Level < logging.LogLevelDebug || c.Logging.Level > logging.LogLevelError {
		return fmt.Errorf("logging.level: invalid level %d", c.Logging.Level)
	}
	if c.Dispatch.MaxChainLength < 0 {
		return fmt.Errorf("dispatch.max_chain_length: must not be negative, got %d", c.Dispatch.MaxChainLength)
	}
	if _, err := param.ParsePolicy(c.Dispatch.FormatPolicy.String()); err != nil {
		return fmt.Errorf("dispatch.format_policy: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Logger builds the logger described by the logging section, writing to out
// (stdout when nil).
func (c *Config) Logger(out io.Writer, component string) logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		Output:    out,
		AddSource: c.Logging.AddSource,
		Component: component,
	})
}

// DispatchOptions returns a functional option applying the dispatch section
// together with a name and a logger.
func (c *Config) DispatchOptions(name string, logger logging.Logger) func(o *dispatch.Options) {
	return func(o *dispatch.Options) {
		o.Name = name
		o.MaxChainLength = c.Dispatch.MaxChainLength
		if logger != nil {
			o.Logger = logger
		}
	}
}
