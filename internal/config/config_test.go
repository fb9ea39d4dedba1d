package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)

	// Given a clean environment
	for _, k := range []string{"SERVICE_ADDR", "REDIS_URL", "REDIS_PRESENCE_TTL", "AUTH_REQUIRED", "LOG_LEVEL",
		"WS_READ_LIMIT", "WS_PING_PERIOD", "WS_SEND_BUFFER", "WS_ALLOWED_ORIGINS", "DB_AUTO_MIGRATE", "OTEL_SAMPLE_RATIO"} {
		t.Setenv(k, "")
	}

	// When
	cfg := Load()

	// Then
	req.NoError(cfg.Validate())
	req.Equal(":8080", cfg.Service.Addr)
	req.Equal(90*time.Second, cfg.Redis.PresenceTTL)
	req.Equal(int64(4096), cfg.Socket.ReadLimit)
	req.Equal(25*time.Second, cfg.Socket.PingPeriod)
	req.Equal(256, cfg.Socket.SendBuffer)
	req.Nil(cfg.Socket.AllowedOrigins)
	req.True(cfg.Postgres.AutoMigrate)
	req.InDelta(1.0, cfg.Tracer.SampleRatio, 0)
}

func TestLoad_Overrides(t *testing.T) {
	req := require.New(t)

	// Given
	t.Setenv("SERVICE_ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("WS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("WS_SEND_BUFFER", "not-a-number")
	t.Setenv("REDIS_PRESENCE_TTL", "30s")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")

	// When
	cfg := Load()

	// Then
	req.NoError(cfg.Validate())
	req.Equal(":9999", cfg.Service.Addr)
	req.Equal("debug", cfg.Logger.Level)
	req.Equal([]string{"https://a.example", "https://b.example"}, cfg.Socket.AllowedOrigins)
	req.Equal(256, cfg.Socket.SendBuffer)
	req.Equal(30*time.Second, cfg.Redis.PresenceTTL)
	req.InDelta(0.25, cfg.Tracer.SampleRatio, 1e-9)
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "auth required without secret", mutate: func(c *Config) { c.Auth.Required = true; c.Auth.Secret = "" }},
		{name: "tracer enabled without address", mutate: func(c *Config) { c.Tracer.Enabled = true; c.Tracer.Address = "" }},
		{name: "ping slower than pong wait", mutate: func(c *Config) { c.Socket.PingPeriod = 2 * c.Socket.PongWait }},
		{name: "unknown log level", mutate: func(c *Config) { c.Logger.Level = "loud" }},
		{name: "sample ratio above one", mutate: func(c *Config) { c.Tracer.SampleRatio = 1.5 }},
		{name: "zero send buffer", mutate: func(c *Config) { c.Socket.SendBuffer = 0 }},
		{name: "missing section", mutate: func(c *Config) { c.Socket = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Load()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
