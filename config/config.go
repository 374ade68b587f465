package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the outreach assistant.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Search    SearchConfig    `mapstructure:"search"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug          bool          `mapstructure:"debug"`
	LogLevel       string        `mapstructure:"log_level"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LLMConfig contains LLM provider configurations.
type LLMConfig struct {
	Provider  string                 `mapstructure:"provider"` // openai, gemini
	Providers map[string]LLMProvider `mapstructure:"providers"`
}

// Active returns the configuration of the selected provider. An unset
// provider name defaults to openai.
func (l LLMConfig) Active() LLMProvider {
	name := l.Provider
	if name == "" {
		name = "openai"
	}
	return l.Providers[name]
}

// LLMProvider represents a single LLM provider configuration.
type LLMProvider struct {
	Type        string        `mapstructure:"type"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Models      []string      `mapstructure:"models"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// SearchConfig contains web search provider settings.
type SearchConfig struct {
	Provider     string        `mapstructure:"provider"` // tavily, serper, brave
	TavilyAPIKey string        `mapstructure:"tavily_api_key"`
	SerperAPIKey string        `mapstructure:"serper_api_key"`
	BraveAPIKey  string        `mapstructure:"brave_api_key"`
	SearchDepth  string        `mapstructure:"search_depth"` // basic, advanced
	MaxResults   int           `mapstructure:"max_results"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	FetchMaxSize int           `mapstructure:"fetch_max_size"`
}

// DiscoveryConfig tunes the professor discovery pipeline.
type DiscoveryConfig struct {
	DefaultTitle      string `mapstructure:"default_title"`
	DefaultDepartment string `mapstructure:"default_department"`
	ExtractionBudget  int    `mapstructure:"extraction_budget"`
	MinProfessors     int    `mapstructure:"min_professors"`
	MaxProfessors     int    `mapstructure:"max_professors"`
}

// ScheduleConfig tunes the send-time advisor.
type ScheduleConfig struct {
	OriginTimezone   string `mapstructure:"origin_timezone"`
	FallbackTimezone string `mapstructure:"fallback_timezone"`
	WindowStartHour  int    `mapstructure:"window_start_hour"`
	WindowStartMin   int    `mapstructure:"window_start_min"`
	CutoffHour       int    `mapstructure:"cutoff_hour"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.default_timeout", 30*time.Second)
	v.SetDefault("server.address", ":10080")
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("search.provider", "tavily")
	v.SetDefault("search.search_depth", "advanced")
	v.SetDefault("search.max_results", 5)
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("search.fetch_timeout", 15*time.Second)
	v.SetDefault("search.fetch_max_size", 20000)
	v.SetDefault("discovery.default_title", "Professor")
	v.SetDefault("discovery.default_department", "Computer Science")
	v.SetDefault("discovery.extraction_budget", 5)
	v.SetDefault("discovery.min_professors", 6)
	v.SetDefault("discovery.max_professors", 10)
	v.SetDefault("schedule.origin_timezone", "Asia/Dhaka")
	v.SetDefault("schedule.window_start_hour", 9)
	v.SetDefault("schedule.window_start_min", 30)
	v.SetDefault("schedule.cutoff_hour", 11)
}

// LoadConfig loads config from an optional file plus OUTREACH_* env vars.
// A missing config file is not an error; missing API keys surface later as
// configuration errors on the action that needs them.
func LoadConfig(path string) (*Config, error) {
	// A fresh viper per load keeps repeated loads (and tests) independent.
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("OUTREACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	bindEnvFallbacks(&cfg)
	return &cfg, nil
}

// bindEnvFallbacks honours the well-known env var names the original tool
// documented (OPENAI_API_KEY, GEMINI_API_KEY, TAVILY_API_KEY, ...) so a
// bare .env file is enough to run. Read with os.Getenv, not viper: the
// OUTREACH env prefix would otherwise rewrite these names.
func bindEnvFallbacks(cfg *Config) {
	if cfg.LLM.Providers == nil {
		cfg.LLM.Providers = map[string]LLMProvider{}
	}
	ensureProvider(cfg, "openai", "OPENAI_API_KEY", "gpt-4o-mini",
		[]string{"gpt-4o-mini", "gpt-4o", "gpt-4-turbo", "gpt-5", "gpt-5-mini"})
	ensureProvider(cfg, "gemini", "GEMINI_API_KEY", "gemini-1.5-flash-latest",
		[]string{"gemini-1.5-flash-latest", "gemini-1.5-pro-latest"})
	if cfg.Search.TavilyAPIKey == "" {
		cfg.Search.TavilyAPIKey = os.Getenv("TAVILY_API_KEY")
	}
	if cfg.Search.SerperAPIKey == "" {
		cfg.Search.SerperAPIKey = os.Getenv("SERPER_API_KEY")
	}
	if cfg.Search.BraveAPIKey == "" {
		cfg.Search.BraveAPIKey = os.Getenv("BRAVE_API_KEY")
	}
}

func ensureProvider(cfg *Config, name, envKey, defaultModel string, models []string) {
	p := cfg.LLM.Providers[name]
	if p.Type == "" {
		p.Type = name
	}
	if p.APIKey == "" {
		p.APIKey = os.Getenv(envKey)
	}
	if p.Model == "" {
		p.Model = defaultModel
	}
	if len(p.Models) == 0 {
		p.Models = models
	}
	if p.Temperature == 0 {
		p.Temperature = 0.01
	}
	if p.Timeout == 0 {
		p.Timeout = 60 * time.Second
	}
	cfg.LLM.Providers[name] = p
}
