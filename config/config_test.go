package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/internal/testutil"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefaultIsValid() {
	s.NoError(Validate(Default()))
}

func (s *ConfigSuite) TestParseEmpty() {
	cfg, err := Parse(nil)
	s.Require().NoError(err)
	s.Equal(Default(), cfg)
}

func (s *ConfigSuite) TestParseOverridesDefaults() {
	cfg, err := Parse([]byte(`
module_paths: [lib, vendor/modules]
log:
  level: debug
exec:
  timeout: 2s
wasm:
  enabled: false
strict_arity: false
`))
	s.Require().NoError(err)

	s.Equal([]string{"lib", "vendor/modules"}, cfg.ModulePaths)
	s.Equal("debug", cfg.Log.Level)
	s.Equal("text", cfg.Log.Format, "unset fields keep their default")
	s.Equal("/bin/sh", cfg.Exec.Shell)
	s.Equal(2*time.Second, cfg.TimeoutDuration())
	s.False(cfg.Wasm.Enabled)
	s.False(cfg.StrictArity)
}

func (s *ConfigSuite) TestParseJSON() {
	cfg, err := Parse([]byte(`{"log": {"format": "json"}}`))
	s.Require().NoError(err)
	s.Equal("json", cfg.Log.Format)
}

func (s *ConfigSuite) TestSchemaRejections() {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"unknown log level", "log:\n  level: verbose\n", "log.level"},
		{"unknown log format", "log:\n  format: xml\n", "log.format"},
		{"wrong type", "strict_arity: \"yes\"\n", "strict_arity"},
		{"numeric timeout", "exec:\n  timeout: 30\n", "exec.timeout"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := Parse([]byte(tt.input))
			cerr := testutil.RequireErrorAs[*errors.ConfigError](s.T(), err)
			s.Equal(tt.field, cerr.Field)
		})
	}
}

func (s *ConfigSuite) TestUnknownKeyRejected() {
	_, err := Parse([]byte("colour: blue\n"))
	testutil.RequireErrorAs[*errors.ConfigError](s.T(), err)
}

func (s *ConfigSuite) TestStructValidation() {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"bad duration", "exec:\n  timeout: soon\n", "exec.timeout"},
		{"empty shell", "exec:\n  shell: \"\"\n", "exec.shell"},
		{"empty module path", "module_paths: [lib, \"\"]\n", "module_paths[1]"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := Parse([]byte(tt.input))
			cerr := testutil.RequireErrorAs[*errors.ConfigError](s.T(), err)
			s.Equal(tt.field, cerr.Field)
			testutil.AssertDetail(s.T(), err, "config", tt.field)
		})
	}
}

func (s *ConfigSuite) TestMalformedYAML() {
	_, err := Parse([]byte("log: [unterminated\n"))
	cerr := testutil.RequireErrorAs[*errors.ConfigError](s.T(), err)
	s.Empty(cerr.Field)
}

func (s *ConfigSuite) TestLoad() {
	path := filepath.Join(s.T().TempDir(), "yan.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal("warn", cfg.Log.Level)

	_, err = Load(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.ErrorIs(err, os.ErrNotExist)
}

func TestSchema(t *testing.T) {
	b, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"module_paths", "log", "exec", "wasm", "strict_arity"} {
		assert.Contains(t, props, key)
	}
}

func TestTimeoutDuration_Unset(t *testing.T) {
	assert.Zero(t, Default().TimeoutDuration())
}
