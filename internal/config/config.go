package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv      = "NEWS_ENRICHER_CONFIG"
	newsAPIKeyEnv      = "NEWS_API_KEY"
	geminiAPIKeyEnv    = "GEMINI_API_KEY"
	unsplashKeyEnv     = "UNSPLASH_ACCESS_KEY"
	youtubeAPIKeyEnv   = "YOUTUBE_API_KEY"
	redisAddrEnv       = "REDIS_ADDR"
	redisPasswordEnv   = "REDIS_PASSWORD"
	databaseDSNEnv     = "DATABASE_DSN"
	defaultCacheTTLSec = 60 * 30
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	News     NewsConfig     `yaml:"news"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Media    MediaConfig    `yaml:"media"`
	Cache    CacheConfig    `yaml:"cache"`
	Database DatabaseConfig `yaml:"database"`
	FullText FullTextConfig `yaml:"fulltext"`
}

// LoggingConfig controls the slog level and output format ("text" or "json").
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewsConfig describes the upstream headlines provider.
type NewsConfig struct {
	BaseURL  string `yaml:"baseUrl"`
	APIKey   string `yaml:"apiKey"`
	Category string `yaml:"category"`
	PageSize int    `yaml:"pageSize"`
}

// GeminiConfig defines how to contact the Gemini generateContent API.
type GeminiConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`
}

// MediaConfig groups the two media-search providers.
type MediaConfig struct {
	UnsplashBaseURL   string `yaml:"unsplashBaseUrl"`
	UnsplashAccessKey string `yaml:"unsplashAccessKey"`
	YouTubeBaseURL    string `yaml:"youtubeBaseUrl"`
	YouTubeAPIKey     string `yaml:"youtubeApiKey"`
}

// CacheConfig describes the Redis connection and entry lifetime.
type CacheConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttlSeconds"`
}

// TTL resolves the configured entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return defaultCacheTTLSec * time.Second
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// DatabaseConfig describes the optional Postgres history store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// FullTextConfig toggles fetching full article bodies from source pages.
type FullTextConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.News.APIKey = v
	}
	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv(unsplashKeyEnv); v != "" {
		c.Media.UnsplashAccessKey = v
	}
	if v := os.Getenv(youtubeAPIKeyEnv); v != "" {
		c.Media.YouTubeAPIKey = v
	}
	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Cache.Addr = v
	}
	if v := os.Getenv(redisPasswordEnv); v != "" {
		c.Cache.Password = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.News.BaseURL != "" {
		base.News.BaseURL = override.News.BaseURL
	}
	if override.News.APIKey != "" {
		base.News.APIKey = override.News.APIKey
	}
	if override.News.Category != "" {
		base.News.Category = override.News.Category
	}
	if override.News.PageSize > 0 {
		base.News.PageSize = override.News.PageSize
	}

	if override.Gemini.BaseURL != "" {
		base.Gemini.BaseURL = override.Gemini.BaseURL
	}
	if override.Gemini.Model != "" {
		base.Gemini.Model = override.Gemini.Model
	}
	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}

	if override.Media.UnsplashBaseURL != "" {
		base.Media.UnsplashBaseURL = override.Media.UnsplashBaseURL
	}
	if override.Media.UnsplashAccessKey != "" {
		base.Media.UnsplashAccessKey = override.Media.UnsplashAccessKey
	}
	if override.Media.YouTubeBaseURL != "" {
		base.Media.YouTubeBaseURL = override.Media.YouTubeBaseURL
	}
	if override.Media.YouTubeAPIKey != "" {
		base.Media.YouTubeAPIKey = override.Media.YouTubeAPIKey
	}

	if override.Cache.Addr != "" {
		base.Cache.Addr = override.Cache.Addr
	}
	if override.Cache.Password != "" {
		base.Cache.Password = override.Cache.Password
	}
	if override.Cache.DB != 0 {
		base.Cache.DB = override.Cache.DB
	}
	if override.Cache.TTLSeconds > 0 {
		base.Cache.TTLSeconds = override.Cache.TTLSeconds
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.FullText.Enabled {
		base.FullText = override.FullText
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		News: NewsConfig{
			BaseURL:  "https://newsapi.org/v2",
			Category: "technology",
			PageSize: 5,
		},
		Gemini: GeminiConfig{
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			Model:   "gemini-2.5-flash",
		},
		Media: MediaConfig{
			UnsplashBaseURL: "https://api.unsplash.com",
			YouTubeBaseURL:  "https://www.googleapis.com/youtube/v3",
		},
		Cache: CacheConfig{
			Addr:       "localhost:6379",
			TTLSeconds: defaultCacheTTLSec,
		},
	}
}
