package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	AI      AIConfig      `mapstructure:"ai"`
	Builder BuilderConfig `mapstructure:"builder"`
	MCP     MCPConfig     `mapstructure:"mcp"`
}

// LogConfig selects the log level and sink. An empty File logs to stdout.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// AIConfig holds text generation provider settings.
type AIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// BuilderConfig holds page builder defaults.
type BuilderConfig struct {
	DefaultPostTitle string `mapstructure:"default_post_title"`
}

// MCPConfig controls the in-app MCP endpoint. An empty HTTPAddr disables it;
// the --mcp command line mode always serves stdio.
type MCPConfig struct {
	HTTPAddr        string `mapstructure:"http_addr"`
	RequireApproval bool   `mapstructure:"require_approval"`
}

// ResolveAPIKey returns the configured key, falling back to the named env var.
func (c AIConfig) ResolveAPIKey() string {
	if k := strings.TrimSpace(c.APIKey); k != "" {
		return k
	}
	if c.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.APIKeyEnv))
}

// Load reads configuration from file and env. Env var overrides use prefix PAGEFORGE_.
// PAGEFORGE_CONFIG points at an explicit config file.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("PAGEFORGE_CONFIG"))
}

// LoadFrom is Load with an explicit config file. An empty path searches
// ~/.config/pageforge/config.toml; a missing file is not an error.
func LoadFrom(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("builder.default_post_title", "Untitled Post")
	v.SetDefault("mcp.http_addr", "")
	v.SetDefault("mcp.require_approval", true)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pageforge"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PAGEFORGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout: must be positive, got %s", c.AI.Timeout)
	}
	if strings.TrimSpace(c.Builder.DefaultPostTitle) == "" {
		return fmt.Errorf("builder.default_post_title: must not be empty")
	}
	return nil
}
