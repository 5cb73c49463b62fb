package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/neexbeast/petmap/internal/poi"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Sampler  SamplerConfig  `mapstructure:"sampler"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Session  SessionConfig  `mapstructure:"session"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimit       int           `mapstructure:"rate_limit"`
}

type DatabaseConfig struct {
	URL           string `mapstructure:"url"`
	MaxConns      int32  `mapstructure:"max_conns"`
	MigrationsDir string `mapstructure:"migrations_dir"`
}

type RedisConfig struct {
	URL      string `mapstructure:"url"`
	PoolSize int    `mapstructure:"pool_size"`
}

type AuthConfig struct {
	BearerToken string `mapstructure:"bearer_token"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SamplerConfig places the synthetic facilities around the origin.
type SamplerConfig struct {
	OriginLat  float64  `mapstructure:"origin_lat"`
	OriginLng  float64  `mapstructure:"origin_lng"`
	RadiusKm   float64  `mapstructure:"radius_km"`
	BoxHalfDeg float64  `mapstructure:"box_half_deg"`
	Count      int      `mapstructure:"count"`
	MaxCount   int      `mapstructure:"max_count"`
	Categories []string `mapstructure:"categories"`
}

// Origin returns the configured origin coordinate.
func (s SamplerConfig) Origin() poi.GeoPoint {
	return poi.GeoPoint{Lat: s.OriginLat, Lng: s.OriginLng}
}

// Bounds returns the box synthetic points are confined to.
func (s SamplerConfig) Bounds() poi.Bounds {
	return poi.BoxAround(s.Origin(), s.BoxHalfDeg)
}

// CategoryPool returns the configured categories as poi.Category values.
func (s SamplerConfig) CategoryPool() []poi.Category {
	out := make([]poi.Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		if cat, ok := poi.ParseCategory(c); ok {
			out = append(out, cat)
		}
	}
	return out
}

type CatalogConfig struct {
	FeedURLs []string `mapstructure:"feed_urls"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load reads configuration from defaults, an optional config file, and
// PETMAP_-prefixed environment variables, in increasing precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.rate_limit", 60)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 0)
	v.SetDefault("database.migrations_dir", "migrations")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 0)
	v.SetDefault("auth.bearer_token", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("sampler.origin_lat", 35.7303)
	v.SetDefault("sampler.origin_lng", 139.7099)
	v.SetDefault("sampler.radius_km", 20.0)
	v.SetDefault("sampler.box_half_deg", 0.15)
	v.SetDefault("sampler.count", 200)
	v.SetDefault("sampler.max_count", 2000)
	v.SetDefault("sampler.categories", []string{"restaurant", "hotel", "activity", "museum", "facility"})
	v.SetDefault("catalog.feed_urls", []string{})
	v.SetDefault("session.ttl", time.Hour)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// PETMAP_DATABASE_URL → database.url
	v.SetEnvPrefix("PETMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, "server.rate_limit must be positive")
	}
	if c.Database.URL == "" {
		errs = append(errs, "database.url is required")
	}
	if c.Redis.URL == "" {
		errs = append(errs, "redis.url is required")
	}
	if c.Auth.BearerToken == "" {
		errs = append(errs, "auth.bearer_token is required")
	}
	if math.IsNaN(c.Sampler.OriginLat) || c.Sampler.OriginLat < -90 || c.Sampler.OriginLat > 90 {
		errs = append(errs, "sampler.origin_lat must be within -90..90")
	}
	if math.IsNaN(c.Sampler.OriginLng) || c.Sampler.OriginLng < -180 || c.Sampler.OriginLng > 180 {
		errs = append(errs, "sampler.origin_lng must be within -180..180")
	}
	if !(c.Sampler.RadiusKm > 0) {
		errs = append(errs, "sampler.radius_km must be positive")
	}
	if !(c.Sampler.BoxHalfDeg > 0) {
		errs = append(errs, "sampler.box_half_deg must be positive")
	}
	if c.Sampler.Count < 0 {
		errs = append(errs, "sampler.count must not be negative")
	}
	if c.Sampler.MaxCount < c.Sampler.Count {
		errs = append(errs, "sampler.max_count must be at least sampler.count")
	}
	if len(c.Sampler.CategoryPool()) != len(c.Sampler.Categories) {
		errs = append(errs, fmt.Sprintf("sampler.categories contains unknown labels: %v", c.Sampler.Categories))
	}
	for _, cat := range c.Sampler.CategoryPool() {
		if cat == poi.ReservedCategory {
			errs = append(errs, fmt.Sprintf("sampler.categories must not contain %q", poi.ReservedCategory))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
