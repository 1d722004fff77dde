package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "DB_DSN", "SHUTDOWN_TIMEOUT_SECONDS", "LOG_LEVEL", "SESSION_SECRET", "SESSION_BACKEND",
		"SESSION_TTL_SECONDS", "COOKIE_SECURE", "REDIS_ADDR", "CORS_ALLOWED_ORIGINS", "KAFKA_BROKERS", "KAFKA_ORDERS_TOPIC",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "cookie", cfg.SessionBackend)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "storefront.orders", cfg.KafkaOrdersTopic)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("SESSION_TTL_SECONDS", "60")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example, http://localhost:3000,")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.Equal(t, time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"https://shop.example", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestFromEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "soon")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg := FromEnv()
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.CookieSecure)
}
