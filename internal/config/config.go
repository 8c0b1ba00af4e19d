package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	HttpTimeoutSec       int `mapstructure:"HTTP_TIMEOUT_SEC"`
	HttpRetryCount       int `mapstructure:"HTTP_RETRY_COUNT"`
	HttpRetryBaseDelayMs int `mapstructure:"HTTP_RETRY_BASE_DELAY_MS"`
	HttpRetryMaxDelayMs  int `mapstructure:"HTTP_RETRY_MAX_DELAY_MS"`

	// Upstream endpoints. Defaults point at the live services; tests
	// override them with httptest servers.
	OembedBaseURL     string `mapstructure:"OEMBED_BASE_URL"`
	SnaptikBaseURL    string `mapstructure:"SNAPTIK_BASE_URL"`
	AggregatorBaseURL string `mapstructure:"AGGREGATOR_BASE_URL"`
	AggregatorAPIKey  string `mapstructure:"AGGREGATOR_API_KEY"`
	AggregatorAPIHost string `mapstructure:"AGGREGATOR_API_HOST"`
	FallbackVideoURL  string `mapstructure:"FALLBACK_VIDEO_URL"`

	ProxyUserAgent string `mapstructure:"PROXY_USER_AGENT"`

	CacheBackend       string `mapstructure:"CACHE_BACKEND"`
	CacheDefaultTTLSec int    `mapstructure:"CACHE_DEFAULT_TTL_SEC"`
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int    `mapstructure:"REDIS_DB"`
	RedisKeyPrefix     string `mapstructure:"REDIS_KEY_PREFIX"`

	DataDir      string `mapstructure:"DATA_DIR"`
	StoreBackend string `mapstructure:"STORE_BACKEND"`
	SQLitePath   string `mapstructure:"SQLITE_PATH"`
	MySQLDSN     string `mapstructure:"MYSQL_DSN"`
	PostgresDSN  string `mapstructure:"POSTGRES_DSN"`
	MongoURI     string `mapstructure:"MONGO_URI"`
	MongoDB      string `mapstructure:"MONGO_DB"`

	// DebugErrors exposes upstream error details in API responses.
	// Never enable in production.
	DebugErrors bool `mapstructure:"DEBUG_ERRORS"`
}

var AppConfig Config

func LoadConfig(path string) error {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("HTTP_TIMEOUT_SEC", 15)
	viper.SetDefault("HTTP_RETRY_COUNT", 0)
	viper.SetDefault("HTTP_RETRY_BASE_DELAY_MS", 500)
	viper.SetDefault("HTTP_RETRY_MAX_DELAY_MS", 4000)
	viper.SetDefault("OEMBED_BASE_URL", "https://www.tiktok.com")
	viper.SetDefault("SNAPTIK_BASE_URL", "https://snaptik.app")
	viper.SetDefault("AGGREGATOR_BASE_URL", "https://auto-download-all-in-one.p.rapidapi.com")
	viper.SetDefault("AGGREGATOR_API_KEY", "")
	viper.SetDefault("AGGREGATOR_API_HOST", "auto-download-all-in-one.p.rapidapi.com")
	viper.SetDefault("FALLBACK_VIDEO_URL", "")
	viper.SetDefault("PROXY_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	viper.SetDefault("CACHE_BACKEND", "memory")
	viper.SetDefault("CACHE_DEFAULT_TTL_SEC", 300)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_KEY_PREFIX", "media_repurposer:")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("STORE_BACKEND", "file")
	viper.SetDefault("SQLITE_PATH", "data/media_repurposer.db")
	viper.SetDefault("MYSQL_DSN", "")
	viper.SetDefault("POSTGRES_DSN", "")
	viper.SetDefault("MONGO_URI", "")
	viper.SetDefault("MONGO_DB", "media_repurposer")
	viper.SetDefault("DEBUG_ERRORS", false)

	viper.SetEnvPrefix("MEDIA_REPURPOSER")
	viper.AutomaticEnv()

	// If no config file found, just use defaults/env
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return err
	}
	Normalize(&AppConfig)
	return nil
}

func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.CacheBackend = strings.ToLower(strings.TrimSpace(cfg.CacheBackend))
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	cfg.OembedBaseURL = strings.TrimRight(strings.TrimSpace(cfg.OembedBaseURL), "/")
	cfg.SnaptikBaseURL = strings.TrimRight(strings.TrimSpace(cfg.SnaptikBaseURL), "/")
	cfg.AggregatorBaseURL = strings.TrimRight(strings.TrimSpace(cfg.AggregatorBaseURL), "/")
}
