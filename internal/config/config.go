// Package config loads the codec, server and logging settings shared by the
// xmlkv command and its HTTP server.
//
// Settings are resolved in order: built-in defaults, an optional TOML
// profile, then XMLKV_* environment variables. Command-line flags are applied
// by the caller on top of the result.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	xmlkv "github.com/KimNorgaard/go-xmlkv"
	"github.com/KimNorgaard/go-xmlkv/internal/ctxlog"
	"github.com/KimNorgaard/go-xmlkv/keypath"
)

// Codec holds the key grammar and output settings.
type Codec struct {
	KeyDelimiter       string `toml:"key_delimiter"`
	AttributeSupport   bool   `toml:"attribute_support"`
	AttributeDelimiter string `toml:"attribute_delimiter"`
	RepetitionStart    int    `toml:"repetition_start"`
	RepetitionPattern  string `toml:"repetition_pattern"`
	Indent             int    `toml:"indent"`
}

// Server holds the HTTP server settings.
type Server struct {
	Addr            string        `toml:"addr"`
	MaxBodyBytes    int64         `toml:"max_body_bytes"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Log holds the logger settings.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the full profile.
type Config struct {
	Codec  Codec  `toml:"codec"`
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`
}

// Default returns the built-in profile.
func Default() Config {
	kc := keypath.DefaultConfig()
	return Config{
		Codec: Codec{
			KeyDelimiter:       kc.KeyDelimiter,
			AttributeSupport:   kc.AttributeSupport,
			AttributeDelimiter: kc.AttributeDelimiter,
			RepetitionStart:    kc.RepetitionStart,
			RepetitionPattern:  kc.RepetitionPattern,
			Indent:             2,
		},
		Server: Server{
			Addr:            ":8080",
			MaxBodyBytes:    10 << 20, // 10MB
			ShutdownTimeout: 10 * time.Second,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load returns the default profile overlaid with the TOML file at path (if
// path is not empty) and the XMLKV_* environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Codec.KeyDelimiter = envOr("XMLKV_KEY_DELIMITER", c.Codec.KeyDelimiter)
	c.Codec.AttributeDelimiter = envOr("XMLKV_ATTRIBUTE_DELIMITER", c.Codec.AttributeDelimiter)
	c.Codec.RepetitionPattern = envOr("XMLKV_REPETITION_PATTERN", c.Codec.RepetitionPattern)
	c.Server.Addr = envOr("XMLKV_ADDR", c.Server.Addr)
	c.Log.Level = envOr("XMLKV_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envOr("XMLKV_LOG_FORMAT", c.Log.Format)

	var err error
	if c.Codec.AttributeSupport, err = envBool("XMLKV_ATTRIBUTE_SUPPORT", c.Codec.AttributeSupport); err != nil {
		return err
	}
	if c.Codec.RepetitionStart, err = envInt("XMLKV_REPETITION_START", c.Codec.RepetitionStart); err != nil {
		return err
	}
	if c.Codec.Indent, err = envInt("XMLKV_INDENT", c.Codec.Indent); err != nil {
		return err
	}
	if c.Server.MaxBodyBytes, err = envInt64("XMLKV_MAX_BODY_BYTES", c.Server.MaxBodyBytes); err != nil {
		return err
	}
	if c.Server.ShutdownTimeout, err = envDuration("XMLKV_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := keypath.New(c.Codec.KeyConfig()); err != nil {
		return fmt.Errorf("config: codec: %w", err)
	}
	if c.Codec.Indent < 0 {
		return errors.New("config: codec: indent cannot be negative")
	}
	if c.Server.Addr == "" {
		return errors.New("config: server: addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("config: server: max_body_bytes must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("config: server: shutdown_timeout must be positive")
	}
	if _, err := ctxlog.New(c.Log.Level, c.Log.Format, io.Discard); err != nil {
		return fmt.Errorf("config: log: %w", err)
	}
	return nil
}

// KeyConfig returns the key grammar part of c.
func (c Codec) KeyConfig() keypath.Config {
	return keypath.Config{
		KeyDelimiter:       c.KeyDelimiter,
		AttributeSupport:   c.AttributeSupport,
		AttributeDelimiter: c.AttributeDelimiter,
		RepetitionStart:    c.RepetitionStart,
		RepetitionPattern:  c.RepetitionPattern,
	}
}

// Options converts c into codec options.
func (c Codec) Options() []xmlkv.Option {
	return []xmlkv.Option{
		xmlkv.WithConfig(c.KeyConfig()),
		xmlkv.Indent(c.Indent),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func envInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
