// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"strings"

	"github.com/spf13/viper"
)

// ProviderConfig selects the active remote translation backend and holds
// its connection settings. Backends other than the selected one take their
// settings from the per-provider `providers` sections.
type ProviderConfig struct {
	ID                string  `mapstructure:"id"`
	APIKey            string  `mapstructure:"api_key"`
	BaseURL           string  `mapstructure:"base_url"`
	Model             string  `mapstructure:"model"`
	Temperature       float64 `mapstructure:"temperature"`
	PromptTemplate    string  `mapstructure:"prompt_template"`
	RequestIntervalMs int     `mapstructure:"request_interval_ms"`
}

// ProviderCredentials configures one backend's connection settings
// independently of which backend is selected.
type ProviderCredentials struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

// TranslationConfig controls chunking and the retry policy.
type TranslationConfig struct {
	Policy                string `mapstructure:"policy"` // "entry" or "token"
	ChunkSize             int    `mapstructure:"chunk_size"`
	MaxTokensPerChunk     int    `mapstructure:"max_tokens_per_chunk"`
	LongContentThreshold  int    `mapstructure:"long_content_threshold"`
	MaxPartLength         int    `mapstructure:"max_part_length"`
	FallbackToEntryPolicy bool   `mapstructure:"fallback_to_entry_policy"`
	MaxRetries            int    `mapstructure:"max_retries"`
	AbortOnAuthError      bool   `mapstructure:"abort_on_auth_error"`
}

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port         int `mapstructure:"port"`
	ScanInterval int `mapstructure:"scan_interval"` // minutes; 0 disables periodic scans
	Database     struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Mods struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"mods"`
	Output struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"output"`
	Backup struct {
		Path string `mapstructure:"path"`
		Keep int    `mapstructure:"keep"` // snapshots retained per source
	} `mapstructure:"backup"`
	Provider  ProviderConfig `mapstructure:"provider"`
	Providers struct {
		OpenAI ProviderCredentials `mapstructure:"openai"`
		Gemini ProviderCredentials `mapstructure:"gemini"`
	} `mapstructure:"providers"`
	Translation TranslationConfig `mapstructure:"translation"`
}

// OpenAI returns the openai connection settings.
func (c *Config) OpenAI() ProviderCredentials {
	return c.providerCreds("openai", c.Providers.OpenAI)
}

// Gemini returns the gemini connection settings.
func (c *Config) Gemini() ProviderCredentials {
	return c.providerCreds("gemini", c.Providers.Gemini)
}

// providerCreds fills gaps in a per-provider section from the active
// `provider` block, but only when that provider is the selected one. The
// non-selected backend never inherits another backend's key or model.
func (c *Config) providerCreds(id string, creds ProviderCredentials) ProviderCredentials {
	if c.Provider.ID != id {
		return creds
	}
	if creds.APIKey == "" {
		creds.APIKey = c.Provider.APIKey
	}
	if creds.BaseURL == "" {
		creds.BaseURL = c.Provider.BaseURL
	}
	if creds.Model == "" {
		creds.Model = c.Provider.Model
	}
	if creds.Temperature == 0 {
		creds.Temperature = c.Provider.Temperature
	}
	return creds
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")

	// Environment variable overrides with a "MODLINGO_" prefix.
	// e.g. MODLINGO_PROVIDER_API_KEY overrides `provider.api_key`.
	viper.SetEnvPrefix("MODLINGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 8080)
	viper.SetDefault("scan_interval", 60)
	viper.SetDefault("database.path", "./modlingo.db")
	viper.SetDefault("mods.path", "./mods")
	viper.SetDefault("output.path", "./output")
	viper.SetDefault("backup.path", "./backups")
	viper.SetDefault("backup.keep", 10)
	viper.SetDefault("provider.id", "openai")
	viper.SetDefault("provider.temperature", 1.0)
	viper.SetDefault("translation.policy", "token")
	viper.SetDefault("translation.fallback_to_entry_policy", true)
	viper.SetDefault("translation.max_retries", 3)
	viper.SetDefault("translation.abort_on_auth_error", true)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
