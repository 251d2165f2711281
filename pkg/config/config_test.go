package config_test

import (
	"testing"
	"time"

	"artisan/pkg/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg := config.FromViper(v)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, "memory", cfg.CatalogDriver)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Second, cfg.LoginDelay)
	assert.Equal(t, 1200*time.Millisecond, cfg.RegisterDelay)
	assert.Equal(t, 800*time.Millisecond, cfg.ProfileDelay)
	assert.Equal(t, 2*time.Second, cfg.CheckoutDelay)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestFromViper_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("LOGIN_DELAY", "0s")

	v := viper.New()
	config.SetDefaults(v)
	v.AutomaticEnv()

	cfg := config.FromViper(v)
	assert.Equal(t, "redis", cfg.StorageDriver)
	assert.Equal(t, time.Duration(0), cfg.LoginDelay)
}
