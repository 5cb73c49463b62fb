package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/petmap/internal/config"
	"github.com/neexbeast/petmap/internal/poi"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PETMAP_DATABASE_URL", "postgres://petmap@localhost:5432/petmap")
	t.Setenv("PETMAP_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PETMAP_AUTH_BEARER_TOKEN", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 60, cfg.Server.RateLimit)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, time.Hour, cfg.Session.TTL)

	assert.Equal(t, poi.GeoPoint{Lat: 35.7303, Lng: 139.7099}, cfg.Sampler.Origin())
	assert.Equal(t, 20.0, cfg.Sampler.RadiusKm)
	assert.Equal(t, 200, cfg.Sampler.Count)
	assert.Equal(t, poi.SyntheticCategories(), cfg.Sampler.CategoryPool())

	b := cfg.Sampler.Bounds()
	assert.InDelta(t, 35.5803, b.MinLat, 1e-9)
	assert.InDelta(t, 139.8599, b.MaxLng, 1e-9)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PETMAP_SERVER_PORT", "9090")
	t.Setenv("PETMAP_SAMPLER_COUNT", "50")
	t.Setenv("PETMAP_SESSION_TTL", "15m")
	t.Setenv("PETMAP_CATALOG_FEED_URLS", "https://a.example/events.json,https://b.example/events.json")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Sampler.Count)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example/events.json", "https://b.example/events.json"}, cfg.Catalog.FeedURLs)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("PETMAP_DATABASE_URL", "")
	t.Setenv("PETMAP_REDIS_URL", "")
	t.Setenv("PETMAP_AUTH_BEARER_TOKEN", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url is required")
	assert.Contains(t, err.Error(), "redis.url is required")
	assert.Contains(t, err.Error(), "auth.bearer_token is required")
}

func validConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, RateLimit: 60},
		Database: config.DatabaseConfig{URL: "postgres://x"},
		Redis:    config.RedisConfig{URL: "redis://x"},
		Auth:     config.AuthConfig{BearerToken: "t"},
		Sampler: config.SamplerConfig{
			OriginLat:  35.7303,
			OriginLng:  139.7099,
			RadiusKm:   20,
			BoxHalfDeg: 0.15,
			Count:      200,
			MaxCount:   2000,
			Categories: []string{"hotel", "museum"},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_SamplerRules(t *testing.T) {
	cases := map[string]func(c *config.Config){
		"radius_km":    func(c *config.Config) { c.Sampler.RadiusKm = -1 },
		"box_half_deg": func(c *config.Config) { c.Sampler.BoxHalfDeg = 0 },
		"origin_lat":   func(c *config.Config) { c.Sampler.OriginLat = 91 },
		"origin_lng":   func(c *config.Config) { c.Sampler.OriginLng = -181 },
		"max_count":    func(c *config.Config) { c.Sampler.MaxCount = 10 },
		"unknown":      func(c *config.Config) { c.Sampler.Categories = []string{"hotel", "atm"} },
		"must not":     func(c *config.Config) { c.Sampler.Categories = []string{"event"} },
	}

	for want, mutate := range cases {
		t.Run(want, func(t *testing.T) {
			c := validConfig()
			mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), want)
		})
	}
}

func TestValidate_Port(t *testing.T) {
	c := validConfig()
	c.Server.Port = 70000
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}
