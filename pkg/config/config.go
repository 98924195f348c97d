package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		RateLimit       struct {
			Enabled bool    `yaml:"enabled" default:"true"`
			RPS     float64 `yaml:"rps" default:"5"`
			Burst   int     `yaml:"burst" default:"10"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Providers struct {
		Price        Provider `yaml:"price"`
		Fundamentals Provider `yaml:"fundamentals"`
		Sentiment    Provider `yaml:"sentiment"`
		Volatility   Provider `yaml:"volatility"`
	} `yaml:"providers"`
	Cache struct {
		TTL            time.Duration `yaml:"ttl" default:"120s"`
		DedupeInflight bool          `yaml:"dedupe_inflight"`
		Redis          struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"pickrank"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Picks struct {
		Watchlist   []string `yaml:"watchlist"`
		Concurrency int      `yaml:"concurrency" default:"8"`
		MaxSymbols  int      `yaml:"max_symbols" default:"50"`
	} `yaml:"picks"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"picks.ranked"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" default:"snappy"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"5"`
			Linger       time.Duration `yaml:"linger" default:"50ms"`
			BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
		} `yaml:"producer"`
		// AutoCreateTopic lets the first publish create a missing topic.
		AutoCreateTopic bool `yaml:"auto_create_topic"`
	} `yaml:"kafka"`
}

// Provider describes one upstream HTTP data source.
type Provider struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout" default:"10s"`
	RatePerSec float64       `yaml:"rate_per_sec" default:"5"`
	Burst      int           `yaml:"burst" default:"1"`
	MaxRetries int           `yaml:"max_retries" default:"2"`
}

// DefaultPriceBaseURL serves both daily prices and company overviews.
const DefaultPriceBaseURL = "https://www.alphavantage.co"

// DefaultWatchlist is used when neither the file nor the environment names symbols.
var DefaultWatchlist = []string{"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL", "META", "TSLA", "JPM"}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c, err := Parse(b)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Parse decodes YAML bytes, fills defaults and validates.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.finish(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadDefault builds a configuration from defaults and the environment only.
func LoadDefault() (*Config, error) {
	var c Config
	applyEnv(&c)
	if err := c.finish(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// An empty path falls back to LoadDefault.
func LoadWithEnv(path string) (*Config, error) {
	if path == "" {
		return LoadDefault()
	}
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	applyEnv(c)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) finish() error {
	if err := defaults.Set(c); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}
	if len(c.Picks.Watchlist) == 0 {
		c.Picks.Watchlist = append([]string(nil), DefaultWatchlist...)
	}
	if c.Providers.Price.BaseURL == "" {
		c.Providers.Price.BaseURL = DefaultPriceBaseURL
	}
	if c.Providers.Fundamentals.BaseURL == "" {
		c.Providers.Fundamentals = c.Providers.Price
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		c.Providers.Price.APIKey = v
		c.Providers.Fundamentals.APIKey = v
	}
	if v := os.Getenv("SENTIMENT_API_KEY"); v != "" {
		c.Providers.Sentiment.APIKey = v
	}
	if v := os.Getenv("VOLATILITY_API_KEY"); v != "" {
		c.Providers.Volatility.APIKey = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Picks.Watchlist = splitList(v)
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Cache.TTL = d
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Cache.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks if the configuration is valid. A missing price API key is
// not an error here; every symbol degrades at request time instead.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Picks.Concurrency <= 0 {
		return fmt.Errorf("picks.concurrency must be positive, got %d", c.Picks.Concurrency)
	}
	if c.Picks.MaxSymbols <= 0 {
		return fmt.Errorf("picks.max_symbols must be positive, got %d", c.Picks.MaxSymbols)
	}
	return nil
}
