package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	cfg := Default()
	err := Decode([]byte(`
max_steps: 5000
timeout: 2s
store:
  kind: redis
  ttl: 1h
batch:
  workers: "8"
`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.MaxSteps)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, StoreRedis, cfg.Store.Kind)
	assert.Equal(t, time.Hour, cfg.Store.TTL)
	assert.Equal(t, 8, cfg.Batch.Workers, "weakly typed")
	// Untouched keys keep defaults.
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestDecode_UnknownKey(t *testing.T) {
	cfg := Default()
	err := Decode([]byte("max_stepz: 1\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_stepz")
}

func TestDecode_Empty(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(nil, &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, []string{
		"TURING_MAX_STEPS=10",
		"TURING_TIMEOUT=500ms",
		"TURING_STORE_KIND=sqlite",
		"TURING_STORE_SQLITE_PATH=/tmp/x.db",
		"TURING_HTTP_ADDR=:9999",
		"TURING_MAX_INPUT_SIZE=12",
		"HOME=/root",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.MaxSteps)
	assert.Equal(t, 500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, StoreSQLite, cfg.Store.Kind)
	assert.Equal(t, "/tmp/x.db", cfg.Store.SQLitePath)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
}

func TestApplyEnv_BadValue(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, []string{"TURING_MAX_STEPS=lots"})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "turing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nstore:\n  kind: memory\n"), 0o644))
	t.Setenv("TURING_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel, "environment wins over file")
	assert.Equal(t, StoreMemory, cfg.Store.Kind)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_DefaultFileOptional(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StoreNone, cfg.Store.Kind)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Kind = "mongo"
	cfg.MaxSteps = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.kind")
	assert.Contains(t, err.Error(), "max_steps")
}

func TestStoreKey(t *testing.T) {
	var s StoreConfig
	key, err := s.Key()
	require.NoError(t, err)
	assert.Nil(t, key)

	s.EncryptionKey = base64.StdEncoding.EncodeToString(make([]byte, 32))
	key, err = s.Key()
	require.NoError(t, err)
	assert.Len(t, key, 32)

	s.EncryptionKey = base64.StdEncoding.EncodeToString([]byte("short"))
	_, err = s.Key()
	assert.ErrorContains(t, err, "32 bytes")

	cfg := Default()
	cfg.Store.EncryptionKey = "%%%"
	assert.ErrorContains(t, cfg.Validate(), "base64")
}

func TestDecode_Redact(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode([]byte("store:\n  redact: [\"^secret\", \"[0-9]{16}\"]\n"), &cfg))
	assert.Equal(t, []string{"^secret", "[0-9]{16}"}, cfg.Store.Redact)
}
