package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

/* Config reads .env (toml) from the working directory, overridden by the environment.
 * A missing .env is fine: every key has a default or is optional.
 */

type Config struct {
	Port string `mapstructure:"PORT"`

	MongoURI        string `mapstructure:"MONGODB_URI"`
	MongoDatabase   string `mapstructure:"MONGODB_DB"`
	MongoCollection string `mapstructure:"MONGODB_COLLECTION"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	DataFile string `mapstructure:"DATA_FILE"`
	LogLimit int    `mapstructure:"LOG_LIMIT"`

	AdminToken         string `mapstructure:"ADMIN_TOKEN"`
	AutoCreate         bool   `mapstructure:"AUTO_CREATE"`
	MaxBodyBytes       int64  `mapstructure:"MAX_BODY_BYTES"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	SeedFile           string `mapstructure:"SEED_FILE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"PORT":                  "8080",
	"MONGODB_URI":           "",
	"MONGODB_DB":            "hookbin",
	"MONGODB_COLLECTION":    "hooks",
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"DATA_FILE":             "data/webhooks.json",
	"LOG_LIMIT":             50,
	"ADMIN_TOKEN":           "",
	"AUTO_CREATE":           true,
	"MAX_BODY_BYTES":        1 << 20,
	"RATE_LIMIT_PER_MINUTE": 0,
	"SEED_FILE":             "",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "json",
}

func GetConfig() (*Config, error) {
	return Load(".")
}

// Load reads .env from dir; tests point it at a temp directory
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects values no component can work with
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("invalid config: PORT is required")
	}
	if c.LogLimit <= 0 {
		return fmt.Errorf("invalid config: LOG_LIMIT must be positive, got %d", c.LogLimit)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid config: MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("invalid config: RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.RateLimitPerMinute)
	}
	if c.MongoURI == "" && c.RedisAddr == "" && c.DataFile == "" {
		return errors.New("invalid config: one of MONGODB_URI, REDIS_ADDR or DATA_FILE is required")
	}
	return nil
}
