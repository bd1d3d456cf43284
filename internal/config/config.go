// Package config loads application configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Enrich   EnrichConfig   `yaml:"enrich" mapstructure:"enrich"`
	Discover DiscoverConfig `yaml:"discover" mapstructure:"discover"`
	Sources  SourcesConfig  `yaml:"sources" mapstructure:"sources"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	DataFile string         `yaml:"data_file" mapstructure:"data_file"`
}

// StoreConfig configures the local run/lead database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// EnrichConfig configures the enrichment engine.
type EnrichConfig struct {
	Concurrency   int `yaml:"concurrency" mapstructure:"concurrency"`
	ProgressBatch int `yaml:"progress_batch" mapstructure:"progress_batch"`
}

// DiscoverConfig configures the discovery engine. Discovery fetches use their
// own delay window and timeout, wider than the lookup ones since result pages
// are heavier.
type DiscoverConfig struct {
	Categories      []string `yaml:"categories" mapstructure:"categories"`
	Localities      []string `yaml:"localities" mapstructure:"localities"`
	MinPauseMS      int      `yaml:"min_pause_ms" mapstructure:"min_pause_ms"`
	MaxPauseMS      int      `yaml:"max_pause_ms" mapstructure:"max_pause_ms"`
	MinFetchDelayMS int      `yaml:"min_fetch_delay_ms" mapstructure:"min_fetch_delay_ms"`
	MaxFetchDelayMS int      `yaml:"max_fetch_delay_ms" mapstructure:"max_fetch_delay_ms"`
	TimeoutSecs     int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Pause returns the bounds of the delay between discovery combinations.
func (d DiscoverConfig) Pause() (time.Duration, time.Duration) {
	return time.Duration(d.MinPauseMS) * time.Millisecond,
		time.Duration(d.MaxPauseMS) * time.Millisecond
}

// FetchDelay returns the bounds of the pre-request sleep for discovery pages.
func (d DiscoverConfig) FetchDelay() (time.Duration, time.Duration) {
	return time.Duration(d.MinFetchDelayMS) * time.Millisecond,
		time.Duration(d.MaxFetchDelayMS) * time.Millisecond
}

// Timeout returns the discovery request timeout.
func (d DiscoverConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSecs) * time.Second
}

// SourcesConfig configures the outbound lookup clients.
type SourcesConfig struct {
	YellowPages SourceEndpoint `yaml:"yellowpages" mapstructure:"yellowpages"`
	DuckDuckGo  SourceEndpoint `yaml:"duckduckgo" mapstructure:"duckduckgo"`
	UserAgents  []string       `yaml:"user_agents" mapstructure:"user_agents"`
	// Randomized pre-request delay bounds, anti-burst policy.
	MinDelayMS int `yaml:"min_delay_ms" mapstructure:"min_delay_ms"`
	MaxDelayMS int `yaml:"max_delay_ms" mapstructure:"max_delay_ms"`
	// Requests-per-second ceiling per source, on top of the delays.
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	// Domains never accepted as a candidate website from search results.
	DirectoryBlocklist []string `yaml:"directory_blocklist" mapstructure:"directory_blocklist"`
}

// Delay returns the bounds of the randomized pre-request sleep.
func (s SourcesConfig) Delay() (time.Duration, time.Duration) {
	return time.Duration(s.MinDelayMS) * time.Millisecond,
		time.Duration(s.MaxDelayMS) * time.Millisecond
}

// SourceEndpoint holds one lookup source's base URL and request timeout.
type SourceEndpoint struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the request timeout as a duration.
func (s SourceEndpoint) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("NORTHSCRAPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "northscrape.db")
	v.SetDefault("enrich.concurrency", 20)
	v.SetDefault("enrich.progress_batch", 5)
	v.SetDefault("discover.categories", DefaultCategories)
	v.SetDefault("discover.localities", DefaultLocalities)
	v.SetDefault("discover.min_pause_ms", 500)
	v.SetDefault("discover.max_pause_ms", 1500)
	v.SetDefault("discover.min_fetch_delay_ms", 200)
	v.SetDefault("discover.max_fetch_delay_ms", 800)
	v.SetDefault("discover.timeout_secs", 10)
	v.SetDefault("sources.yellowpages.base_url", "https://www.yellowpages.ca")
	v.SetDefault("sources.yellowpages.timeout_secs", 8)
	v.SetDefault("sources.duckduckgo.base_url", "https://html.duckduckgo.com")
	v.SetDefault("sources.duckduckgo.timeout_secs", 8)
	v.SetDefault("sources.user_agents", DefaultUserAgents)
	v.SetDefault("sources.min_delay_ms", 100)
	v.SetDefault("sources.max_delay_ms", 500)
	v.SetDefault("sources.rate_per_sec", 2.0)
	v.SetDefault("sources.directory_blocklist", []string{"yelp", "yellowpages", "411.ca"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
