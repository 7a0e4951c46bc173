package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 15*time.Minute, cfg.Session.CheckInterval)
	assert.Equal(t, "educa_session", cfg.Session.CookieName)
	assert.Equal(t, "/login", cfg.Session.LoginPath)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("API_BASE_URL", "https://educa.example.com/")
	v.Set("SESSION_STORE", "REDIS")
	v.Set("SESSION_CHECK_INTERVAL", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := fromViper(v)

	assert.Equal(t, "https://educa.example.com", cfg.API.BaseURL)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 15*time.Minute, cfg.Session.CheckInterval)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestUnknownSessionStoreFallsBackToMemory(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SESSION_STORE", "memcached")

	assert.Equal(t, SessionStoreMemory, fromViper(v).Session.Store)
}
