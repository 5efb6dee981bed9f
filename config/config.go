// Package config loads and validates runtime configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/infrastructure/parser"
)

// Config is the runtime configuration.
type Config struct {
	// ModulePaths are searched, in order, for data and wasm modules.
	ModulePaths []string `json:"module_paths,omitempty" yaml:"module_paths" jsonschema:"description=Directories searched for host modules" validate:"dive,required"`

	Log  LogConfig  `json:"log,omitempty" yaml:"log"`
	Exec ExecConfig `json:"exec,omitempty" yaml:"exec"`
	Wasm WasmConfig `json:"wasm,omitempty" yaml:"wasm"`

	// StrictArity rejects surplus builtin arguments instead of dropping them.
	StrictArity bool `json:"strict_arity,omitempty" yaml:"strict_arity" jsonschema:"description=Reject surplus builtin arguments"`
}

// LogConfig configures the runtime logger.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error" validate:"oneof=debug info warn error"`
	Format string `json:"format,omitempty" yaml:"format" jsonschema:"enum=text,enum=json" validate:"oneof=text json"`
}

// ExecConfig configures os.System.
type ExecConfig struct {
	Shell string `json:"shell,omitempty" yaml:"shell" jsonschema:"description=Shell used to run commands" validate:"required"`
	// Timeout is a Go duration string; empty means no limit.
	Timeout string `json:"timeout,omitempty" yaml:"timeout" jsonschema:"description=Command timeout such as 30s" validate:"omitempty,duration"`
}

// WasmConfig configures the WebAssembly module finder.
type WasmConfig struct {
	Enabled bool `json:"enabled,omitempty" yaml:"enabled"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ModulePaths: []string{"."},
		Log:         LogConfig{Level: "info", Format: "text"},
		Exec:        ExecConfig{Shell: "/bin/sh"},
		Wasm:        WasmConfig{Enabled: true},
		StrictArity: true,
	}
}

// TimeoutDuration returns the parsed exec timeout, zero when unset.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Exec.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Exec.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{Err: err}
	}
	return Parse(data)
}

// Parse validates data against the configuration schema, decodes it over
// Default and checks the resulting struct.
func Parse(data []byte) (*Config, error) {
	doc, err := parser.NewYamlDocumentParser().Parse(data)
	if err != nil {
		return nil, &errors.ConfigError{Err: err}
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	cfg := Default()
	if len(doc) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &errors.ConfigError{Err: err}
		}
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
