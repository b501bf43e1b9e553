package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Cache drivers
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Geocoding GeocodingConfig
	Cache     CacheConfig
	Redis     RedisConfig
	App       AppConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port        int
	GinMode     string   // debug, release, test
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// GeocodingConfig holds the upstream provider and search settings
type GeocodingConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	UserAgent      string `mapstructure:"user_agent"`
	Timeout        int    // seconds
	RateLimit      int    `mapstructure:"rate_limit"` // seconds between requests, not enforced
	MinChars       int    `mapstructure:"min_chars"`
	MaxResults     int    `mapstructure:"max_results"`
	CountryCode    string `mapstructure:"country_code"`
	Language       string
	IncludeRaw     bool           `mapstructure:"include_raw"`
	ResponseFormat ResponseFormat `mapstructure:"response_format"`
}

// ResponseFormat names the provider fields read for the required record fields
type ResponseFormat struct {
	DisplayName string `mapstructure:"display_name"`
	Lat         string
	Lon         string
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	Enabled bool
	Driver  string // memory, redis
	TTL     int    // seconds
	Prefix  string
}

// RedisConfig holds the connection settings for the redis cache driver
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	TimezoneEnabled bool `mapstructure:"timezone_enabled"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// A .env file is optional
	_ = godotenv.Load()

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.location-finder")

	setDefaults(v)

	// Read from environment variables, e.g. LOCATION_FINDER_CACHE_DRIVER
	v.SetEnvPrefix("LOCATION_FINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("geocoding.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoding.user_agent", "LocationFinder/1.0")
	v.SetDefault("geocoding.timeout", 10)
	v.SetDefault("geocoding.rate_limit", 1)
	v.SetDefault("geocoding.min_chars", 3)
	v.SetDefault("geocoding.max_results", 10)
	v.SetDefault("geocoding.country_code", "tr")
	v.SetDefault("geocoding.language", "tr")
	v.SetDefault("geocoding.include_raw", false)
	v.SetDefault("geocoding.response_format.display_name", "display_name")
	v.SetDefault("geocoding.response_format.lat", "lat")
	v.SetDefault("geocoding.response_format.lon", "lon")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.driver", CacheDriverMemory)
	v.SetDefault("cache.ttl", 3600)
	v.SetDefault("cache.prefix", "location_finder_")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("app.timezone_enabled", true)
}

// Validate checks settings that would otherwise fail at request time
func (c *Config) Validate() error {
	g := c.Geocoding
	switch {
	case strings.TrimSpace(g.BaseURL) == "":
		return fmt.Errorf("%w: geocoding.base_url is required", ErrInvalidConfig)
	case strings.TrimSpace(g.UserAgent) == "":
		return fmt.Errorf("%w: geocoding.user_agent is required", ErrInvalidConfig)
	case g.Timeout <= 0:
		return fmt.Errorf("%w: geocoding.timeout must be positive", ErrInvalidConfig)
	case g.MaxResults < 1:
		return fmt.Errorf("%w: geocoding.max_results must be at least 1", ErrInvalidConfig)
	case g.MinChars < 0:
		return fmt.Errorf("%w: geocoding.min_chars must not be negative", ErrInvalidConfig)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL < 0 {
			return fmt.Errorf("%w: cache.ttl must not be negative", ErrInvalidConfig)
		}
		switch strings.ToLower(c.Cache.Driver) {
		case CacheDriverMemory, CacheDriverRedis:
		default:
			return fmt.Errorf("%w: unknown cache.driver %q", ErrInvalidConfig, c.Cache.Driver)
		}
	}

	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// RequestTimeout returns the upstream request timeout
func (g GeocodingConfig) RequestTimeout() time.Duration {
	return time.Duration(g.Timeout) * time.Second
}

// TTLDuration returns the cache entry lifetime
func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
