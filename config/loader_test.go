package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.Session.TurnsEach)
	assert.Equal(t, 3, cfg.Session.RetrievalK)
	assert.Equal(t, 2000, cfg.Session.TurnMaxTokens)
	assert.InDelta(t, 0.8, cfg.Session.TurnTemperature, 1e-9)
	assert.Equal(t, 5000, cfg.Session.SynthesisMaxTokens)
	assert.InDelta(t, 0.6, cfg.Session.SynthesisTemperature, 1e-9)
	assert.True(t, cfg.Session.GapCheckEnabled)
	assert.Equal(t, "list", cfg.Session.SelectionMode)

	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, "all_session_archives", cfg.Qdrant.ArchiveCollection)

	require.NoError(t, cfg.Validate())
}

func TestLoader_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
session:
  turns_each: 5
  retrieval_k: 2
llm:
  model: gpt-4o-mini
  timeout: 45s
redis:
  enabled: true
  addr: "redis:6379"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Session.TurnsEach)
	assert.Equal(t, 2, cfg.Session.RetrievalK)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)

	// 未覆盖的字段保持默认值
	assert.Equal(t, 2000, cfg.Session.TurnMaxTokens)
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath("/nonexistent/config.yaml").Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Session.TurnsEach)
}

func TestLoader_EnvOverride(t *testing.T) {
	t.Setenv("IDEASTORM_SESSION_TURNS_EACH", "3")
	t.Setenv("IDEASTORM_LLM_API_KEY", "sk-test")
	t.Setenv("IDEASTORM_LLM_TIMEOUT", "90s")
	t.Setenv("IDEASTORM_LOG_OUTPUT_PATHS", "stdout, stderr")
	t.Setenv("IDEASTORM_SESSION_GAP_CHECK_ENABLED", "false")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Session.TurnsEach)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"stdout", "stderr"}, cfg.Log.OutputPaths)
	assert.False(t, cfg.Session.GapCheckEnabled)
}

func TestLoader_EnvPrefix(t *testing.T) {
	t.Setenv("CUSTOM_SESSION_TURNS_EACH", "7")

	cfg, err := NewLoader().WithEnvPrefix("CUSTOM").Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Session.TurnsEach)
}

func TestLoader_Validator(t *testing.T) {
	_, err := NewLoader().
		WithValidator(func(c *Config) error {
			return assert.AnError
		}).
		Load()
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Session.TurnsEach = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turns_each")

	cfg = DefaultConfig()
	cfg.Session.SelectionMode = "random"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selection_mode")

	cfg = DefaultConfig()
	cfg.Session.TurnTemperature = 3.0
	assert.Error(t, cfg.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Path: "/tmp/x.db"}
	assert.Equal(t, "/tmp/x.db", d.DSN())

	d = DatabaseConfig{}
	assert.Equal(t, "ideastorm.db", d.DSN())
}
