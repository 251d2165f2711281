package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort       string
	Environment   string
	JWTSecret     string
	SessionTTL    time.Duration
	StorageDriver string
	RedisURL      string
	DatabaseDSN   string
	CatalogDriver string
	RabbitMQURL   string
	LoginDelay    time.Duration
	RegisterDelay time.Duration
	ProfileDelay  time.Duration
	CheckoutDelay time.Duration
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("JWT_SECRET", "artisan-dev-secret")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("STORAGE_DRIVER", "memory")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("DATABASE_DSN", "file:artisan.db?cache=shared")
	v.SetDefault("CATALOG_DRIVER", "memory")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOGIN_DELAY", "1s")
	v.SetDefault("REGISTER_DELAY", "1200ms")
	v.SetDefault("PROFILE_DELAY", "800ms")
	v.SetDefault("CHECKOUT_DELAY", "2s")
}

// Load reads an optional .env file, then the environment, on top of the
// defaults.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

func FromViper(v *viper.Viper) *Config {
	return &Config{
		AppPort:       v.GetString("APP_PORT"),
		Environment:   v.GetString("ENVIRONMENT"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		SessionTTL:    v.GetDuration("SESSION_TTL"),
		StorageDriver: v.GetString("STORAGE_DRIVER"),
		RedisURL:      v.GetString("REDIS_URL"),
		DatabaseDSN:   v.GetString("DATABASE_DSN"),
		CatalogDriver: v.GetString("CATALOG_DRIVER"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		LoginDelay:    v.GetDuration("LOGIN_DELAY"),
		RegisterDelay: v.GetDuration("REGISTER_DELAY"),
		ProfileDelay:  v.GetDuration("PROFILE_DELAY"),
		CheckoutDelay: v.GetDuration("CHECKOUT_DELAY"),
	}
}
