// Package config loads turing.yaml and TURING_* environment overrides.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "turing.yaml"

// EnvPrefix namespaces environment overrides, e.g. TURING_STORE_KIND.
const EnvPrefix = "TURING_"

// Store kinds.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the full runtime configuration.
type Config struct {
	MaxSteps    int           `mapstructure:"max_steps" yaml:"max_steps"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	LogLevel    string        `mapstructure:"log_level" yaml:"log_level"` // empty keeps the CLI quiet
	LogFile     string        `mapstructure:"log_file" yaml:"log_file"`
	MachinesDir string        `mapstructure:"machines_dir" yaml:"machines_dir"`
	Strict      bool          `mapstructure:"strict" yaml:"strict"`
	Store       StoreConfig   `mapstructure:"store" yaml:"store"`
	HTTP        HTTPConfig    `mapstructure:"http" yaml:"http"`
	Batch       BatchConfig   `mapstructure:"batch" yaml:"batch"`
}

// StoreConfig selects and configures the run store.
type StoreConfig struct {
	Kind        string        `mapstructure:"kind" yaml:"kind"`
	Dir         string        `mapstructure:"dir" yaml:"dir"`
	RedisAddr   string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPrefix string        `mapstructure:"redis_prefix" yaml:"redis_prefix"`
	TTL         time.Duration `mapstructure:"ttl" yaml:"ttl"`
	SQLitePath  string        `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	// EncryptionKey is a base64 AES-256 key; inputs and tapes are
	// encrypted at rest when set.
	EncryptionKey string `mapstructure:"encryption_key" yaml:"encryption_key"`
	// Redact masks recorded inputs matching any of these patterns.
	Redact []string `mapstructure:"redact" yaml:"redact"`
}

// HTTPConfig configures `turing serve`.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// BatchConfig configures `turing batch`.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		MachinesDir: "machines",
		Store: StoreConfig{
			Kind:        StoreNone,
			Dir:         ".turing/runs",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "turing:run:",
			SQLitePath:  ".turing/runs.db",
		},
		HTTP:  HTTPConfig{Addr: ":8080"},
		Batch: BatchConfig{Workers: 4},
	}
}

// Load reads path (or DefaultFile if path is empty and it exists), then
// applies environment overrides. A missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Defaults only.
	default:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := ApplyEnv(&cfg, os.Environ()); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode merges YAML data into cfg. Keys absent from data keep their values.
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	if raw == nil {
		return nil
	}
	return decodeMap(raw, cfg)
}

func decodeMap(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// ApplyEnv overrides cfg from TURING_* variables in environ ("KEY=value").
// Nested keys use an underscore between section and field:
// TURING_STORE_KIND, TURING_HTTP_ADDR, TURING_MAX_STEPS.
func ApplyEnv(cfg *Config, environ []string) error {
	raw := map[string]any{}
	sections := map[string]bool{"store": true, "http": true, "batch": true}

	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		section, field, nested := strings.Cut(name, "_")
		if nested && sections[section] {
			sub, _ := raw[section].(map[string]any)
			if sub == nil {
				sub = map[string]any{}
				raw[section] = sub
			}
			sub[field] = val
			continue
		}
		if knownTopLevel[name] {
			raw[name] = val
		}
	}
	if len(raw) == 0 {
		return nil
	}
	if err := decodeMap(raw, cfg); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// knownTopLevel filters unrelated TURING_* variables such as
// TURING_MAX_INPUT_SIZE, which the runner reads itself.
var knownTopLevel = map[string]bool{
	"max_steps":    true,
	"timeout":      true,
	"log_level":    true,
	"log_file":     true,
	"machines_dir": true,
	"strict":       true,
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []string
	if c.MaxSteps < 0 {
		errs = append(errs, "max_steps must not be negative")
	}
	if c.Timeout < 0 {
		errs = append(errs, "timeout must not be negative")
	}
	switch c.Store.Kind {
	case StoreNone, StoreMemory, StoreFile, StoreRedis, StoreSQLite:
	default:
		errs = append(errs, fmt.Sprintf("store.kind %q is not one of none, memory, file, redis, sqlite", c.Store.Kind))
	}
	if c.Store.EncryptionKey != "" {
		if _, err := c.Store.Key(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, "batch.workers must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Key decodes EncryptionKey. It returns nil when no key is set.
func (s StoreConfig) Key() ([]byte, error) {
	if s.EncryptionKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("store.encryption_key is not valid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("store.encryption_key must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}
