package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageforge/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PAGEFORGE_CONFIG", "")

	c, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "info", c.Log.Level)
	assert.Empty(t, c.Log.File)
	assert.Equal(t, "OPENAI_API_KEY", c.AI.APIKeyEnv)
	assert.Equal(t, "gpt-4o-mini", c.AI.Model)
	assert.Equal(t, 30*time.Second, c.AI.Timeout)
	assert.Equal(t, "Untitled Post", c.Builder.DefaultPostTitle)
	assert.Empty(t, c.MCP.HTTPAddr)
	assert.True(t, c.MCP.RequireApproval)
}

func TestLoadFrom_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "debug"

[ai]
base_url = "http://localhost:11434/v1/"
model = "llama3"
timeout = "5s"

[builder]
default_post_title = "Draft"
`), 0o644))
	t.Setenv("PAGEFORGE_AI_MODEL", "from-env")

	c, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "http://localhost:11434/v1/", c.AI.BaseURL)
	assert.Equal(t, "from-env", c.AI.Model, "env overrides file")
	assert.Equal(t, 5*time.Second, c.AI.Timeout)
	assert.Equal(t, "Draft", c.Builder.DefaultPostTitle)
}

func TestLoadFrom_MissingExplicitFile(t *testing.T) {
	_, err := config.LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ok := config.Config{
		Log:     config.LogConfig{Level: "warn"},
		AI:      config.AIConfig{Timeout: time.Second},
		Builder: config.BuilderConfig{DefaultPostTitle: "x"},
	}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Log.Level = "loud"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.AI.Timeout = 0
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Builder.DefaultPostTitle = "  "
	assert.Error(t, bad.Validate())
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("PF_TEST_KEY", " from-env ")
	assert.Equal(t, "from-env", config.AIConfig{APIKeyEnv: "PF_TEST_KEY"}.ResolveAPIKey())
	assert.Equal(t, "explicit", config.AIConfig{APIKey: "explicit", APIKeyEnv: "PF_TEST_KEY"}.ResolveAPIKey())
	assert.Empty(t, config.AIConfig{}.ResolveAPIKey())
}
