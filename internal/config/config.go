package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	CoinGecko   CoinGeckoConfig   `yaml:"coinGecko"`
	DEXScreener DEXScreenerConfig `yaml:"dexScreener"`
	Resolver    ResolverConfig    `yaml:"resolver"`
	Calculator  CalculatorConfig  `yaml:"calculator"`
	Market      MarketConfig      `yaml:"market"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// CoinGeckoConfig holds the configuration for the CoinGecko client.
type CoinGeckoConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	ApiKey               string  `yaml:"apiKey"`
	VsCurrency           string  `yaml:"vsCurrency"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	SearchTimeoutMillis  int64   `yaml:"searchTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	RateLimitBurst       int     `yaml:"rateLimitBurst"`
	ContractPlatform     string  `yaml:"contractPlatform"` // asset platform used for contract lookups
}

// DEXScreenerConfig holds the configuration for the DEX Screener client.
type DEXScreenerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	ChainID              string `yaml:"chainID"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// ResolverConfig holds configuration for the token resolver.
type ResolverConfig struct {
	CacheTTLMinutes         int `yaml:"cacheTTLMinutes"`
	CacheCleanupMinutes     int `yaml:"cacheCleanupMinutes"`
	RecentSearchHistorySize int `yaml:"recentSearchHistorySize"`
}

// CalculatorConfig holds configuration for the position risk calculator.
type CalculatorConfig struct {
	MaintenanceMarginRate float64 `yaml:"maintenanceMarginRate"`
	StrictStopCheck       bool    `yaml:"strictStopCheck"`
}

// MarketConfig holds configuration for the market overview service.
type MarketConfig struct {
	WatchlistFile   string `yaml:"watchlistFile"`
	CacheTTLMinutes int    `yaml:"cacheTTLMinutes"`
	MoversCount     int    `yaml:"moversCount"`
}

// LoadConfig loads configuration from a YAML file and applies defaults for
// every field that is left unset.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	cfg.applyDefaults()

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
		logrus.Infof("CoinGecko.BaseURL not set, defaulting to %s", cfg.CoinGecko.BaseURL)
	}
	if cfg.CoinGecko.VsCurrency == "" {
		cfg.CoinGecko.VsCurrency = "usd"
	}
	if cfg.CoinGecko.RequestTimeoutMillis == 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 10000 // Default to 10 seconds
		logrus.Infof("CoinGecko.RequestTimeoutMillis not set, defaulting to %d ms", cfg.CoinGecko.RequestTimeoutMillis)
	}
	if cfg.CoinGecko.SearchTimeoutMillis == 0 {
		// Fallback lookups use a tighter budget than the primary call.
		cfg.CoinGecko.SearchTimeoutMillis = 8000
	}
	if cfg.CoinGecko.RateLimitPerSecond == 0 {
		cfg.CoinGecko.RateLimitPerSecond = 0.5 // public API allows ~30 calls/min
	}
	if cfg.CoinGecko.RateLimitBurst == 0 {
		cfg.CoinGecko.RateLimitBurst = 3
	}
	if cfg.CoinGecko.ContractPlatform == "" {
		cfg.CoinGecko.ContractPlatform = "ethereum"
	}

	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
		logrus.Infof("DEXScreener.BaseURL not set, defaulting to %s", cfg.DEXScreener.BaseURL)
	}
	if cfg.DEXScreener.ChainID == "" {
		cfg.DEXScreener.ChainID = "ethereum"
	}
	if cfg.DEXScreener.RequestTimeoutMillis == 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000 // Default to 10 seconds
	}

	if cfg.Resolver.CacheTTLMinutes == 0 {
		cfg.Resolver.CacheTTLMinutes = 5
		logrus.Infof("Resolver.CacheTTLMinutes not set, defaulting to %d minutes", cfg.Resolver.CacheTTLMinutes)
	}
	if cfg.Resolver.CacheCleanupMinutes == 0 {
		cfg.Resolver.CacheCleanupMinutes = 10
	}
	if cfg.Resolver.RecentSearchHistorySize == 0 {
		cfg.Resolver.RecentSearchHistorySize = 5
	}

	if cfg.Calculator.MaintenanceMarginRate == 0 {
		cfg.Calculator.MaintenanceMarginRate = 0.005
	}

	if cfg.Market.WatchlistFile == "" {
		cfg.Market.WatchlistFile = "data/watchlist.json"
	}
	if cfg.Market.CacheTTLMinutes == 0 {
		cfg.Market.CacheTTLMinutes = 5
	}
	if cfg.Market.MoversCount == 0 {
		cfg.Market.MoversCount = 5
	}
}
