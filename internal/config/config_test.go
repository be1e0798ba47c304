package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	xmlkv "github.com/KimNorgaard/go-xmlkv"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xmlkv.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
[codec]
key_delimiter = "/"
attribute_delimiter = "@"
repetition_start = 0
repetition_pattern = "(%s)"

[server]
addr = "127.0.0.1:9000"
shutdown_timeout = "3s"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "/", cfg.Codec.KeyDelimiter)
	require.Equal(t, "@", cfg.Codec.AttributeDelimiter)
	require.Equal(t, 0, cfg.Codec.RepetitionStart)
	require.Equal(t, "(%s)", cfg.Codec.RepetitionPattern)
	require.True(t, cfg.Codec.AttributeSupport, "keys absent from the profile keep their defaults")
	require.Equal(t, 2, cfg.Codec.Indent)
	require.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	require.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, int64(10<<20), cfg.Server.MaxBodyBytes)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := Load(writeProfile(t, "[codec\n"))
		require.ErrorContains(t, err, "config: reading")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Load(writeProfile(t, "[codec]\ndelimiter = \"/\"\n"))
		require.ErrorContains(t, err, "unknown keys: codec.delimiter")
	})
}

func TestLoadEnvironment(t *testing.T) {
	path := writeProfile(t, "[codec]\nkey_delimiter = \"/\"\n")

	t.Setenv("XMLKV_KEY_DELIMITER", ":")
	t.Setenv("XMLKV_ATTRIBUTE_SUPPORT", "false")
	t.Setenv("XMLKV_REPETITION_START", "0")
	t.Setenv("XMLKV_INDENT", "4")
	t.Setenv("XMLKV_MAX_BODY_BYTES", "1024")
	t.Setenv("XMLKV_SHUTDOWN_TIMEOUT", "1m")
	t.Setenv("XMLKV_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":", cfg.Codec.KeyDelimiter, "environment overrides the profile")
	require.False(t, cfg.Codec.AttributeSupport)
	require.Equal(t, 0, cfg.Codec.RepetitionStart)
	require.Equal(t, 4, cfg.Codec.Indent)
	require.Equal(t, int64(1024), cfg.Server.MaxBodyBytes)
	require.Equal(t, time.Minute, cfg.Server.ShutdownTimeout)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvironmentErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"XMLKV_ATTRIBUTE_SUPPORT", "sometimes"},
		{"XMLKV_REPETITION_START", "one"},
		{"XMLKV_INDENT", "2.5"},
		{"XMLKV_MAX_BODY_BYTES", "lots"},
		{"XMLKV_SHUTDOWN_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load("")
			require.ErrorContains(t, err, "config: "+tt.key)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty delimiter", func(c *Config) { c.Codec.KeyDelimiter = "" }, "config: codec: keypath: key delimiter cannot be empty"},
		{"bad pattern", func(c *Config) { c.Codec.RepetitionPattern = "[]" }, "config: codec:"},
		{"negative indent", func(c *Config) { c.Codec.Indent = -1 }, "indent cannot be negative"},
		{"no addr", func(c *Config) { c.Server.Addr = "" }, "addr is required"},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "max_body_bytes must be positive"},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "shutdown_timeout must be positive"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "config: log: unknown log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestCodecOptions(t *testing.T) {
	cfg := Default()
	cfg.Codec.KeyDelimiter = "/"
	cfg.Codec.AttributeSupport = false

	m, err := xmlkv.Flatten([]byte(`<a id="1"><b>x</b><b>y</b></a>`), cfg.Codec.Options()...)
	require.NoError(t, err)
	require.Equal(t, xmlkv.FlatMap{"a/b[1]": "x", "a/b[2]": "y"}, m)
}
