package app

import (
	"github.com/nssports/sportsbook/app/database"
	"github.com/nssports/sportsbook/app/settlement"
	"github.com/nssports/sportsbook/internal/nexus"
)

// CacheConfig selects the cache backend shared by the margin engine and the
// risk read cache.
type CacheConfig struct {
	Backend       string `env:"CACHE_BACKEND" env-default:"memory"`
	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
}

type Config struct {
	DB         database.Config
	Cache      CacheConfig
	Settlement settlement.Config

	AppHost string `env:"APP_HOST" env-default:"localhost"`
	AppPort string `env:"APP_PORT" env-default:"8080"`
	Env     string `env:"APP_ENV" env-default:"development"`

	// ResultWebhookSecret signs the result feed's push notifications.
	ResultWebhookSecret string `env:"RESULT_WEBHOOK_SECRET"`
}

// LoadConfig loads the application configuration from environment variables or a config file.
func LoadConfig() (*Config, error) {
	c := &Config{}
	err := nexus.NewLoader().Load(c)
	return c, err
}
