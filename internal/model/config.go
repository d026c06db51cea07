package model

import "time"

// Config holds all runtime settings. Values come from defaults, the
// config file (~/.compscan/config.yaml), COMPSCAN_* environment
// variables, and CLI flags, in increasing priority.
type Config struct {
	Insight     InsightConfig     `yaml:"insight"`
	Stats       StatsConfig       `yaml:"stats"`
	Photos      PhotosConfig      `yaml:"photos"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
	LLM         LLMConfig         `yaml:"llm"`
}

// InsightConfig configures the photo-insight lookup client.
type InsightConfig struct {
	BaseURL      string        `yaml:"base_url"`
	CDNBaseURL   string        `yaml:"cdn_base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	RequestDelay time.Duration `yaml:"request_delay"` // pause between consecutive lookups
	UserAgent    string        `yaml:"user_agent"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// StatsConfig bounds the derived-metric sanity checks.
type StatsConfig struct {
	MinLotAcres     float64 `yaml:"min_lot_acres"`
	MinPricePerAcre float64 `yaml:"min_price_per_acre"`
	MaxPricePerAcre float64 `yaml:"max_price_per_acre"`
}

// PhotosConfig holds the photo-selection thresholds.
type PhotosConfig struct {
	ExteriorConfidence float64 `yaml:"exterior_confidence"` // AI-selection floor for the main slot
	MismatchConfidence float64 `yaml:"mismatch_confidence"` // below this, a filled slot is flagged
}

// CacheConfig configures the insight payload cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig limits the batch workers.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// OutputConfig controls the report renderers.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// LLMConfig configures the optional market-summary provider.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // from environment only, never serialized
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout_seconds"`
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Insight: InsightConfig{
			BaseURL:      "https://insights.example.com/v1",
			CDNBaseURL:   "https://cdn.example.com",
			Timeout:      15 * time.Second,
			RequestDelay: 750 * time.Millisecond,
			UserAgent:    "compscan/0.3 (+https://github.com/mkravets/compscan)",
		},
		Stats: StatsConfig{
			MinLotAcres:     0.05,
			MinPricePerAcre: 1_000,
			MaxPricePerAcre: 15_000_000,
		},
		Photos: PhotosConfig{
			ExteriorConfidence: 70,
			MismatchConfidence: 50,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.compscan/cache at startup
			MemoryTTL: time.Hour,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 800,
		},
	}
}
