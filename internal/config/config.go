package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Jikan  JikanConfig  `mapstructure:"jikan"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`

	// Inbound pacing for the HTTP facade, 0 disables it
	MaxRequestsPerSecond int `mapstructure:"max_requests_per_second"`
}

// JikanConfig holds upstream catalog API configuration
type JikanConfig struct {
	BaseURL       string   `mapstructure:"base_url"`
	Timeout       int      `mapstructure:"timeout"`        // seconds, per request
	ThrottleDelay int      `mapstructure:"throttle_delay"` // milliseconds between requests
	PageSize      int      `mapstructure:"page_size"`
	UserAgent     string   `mapstructure:"user_agent"`
	Proxies       []string `mapstructure:"proxies"`
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c JikanConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c JikanConfig) ThrottleInterval() time.Duration {
	return time.Duration(c.ThrottleDelay) * time.Millisecond
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty path looks for config.yaml in the working directory; a missing
// default file is not an error since every key has a default.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects values the client cannot work with.
func (c *Config) Validate() error {
	if c.Jikan.BaseURL == "" {
		return fmt.Errorf("jikan.base_url must not be empty")
	}
	if c.Jikan.PageSize <= 0 {
		return fmt.Errorf("jikan.page_size must be positive, got %d", c.Jikan.PageSize)
	}
	if c.Jikan.ThrottleDelay < 0 {
		return fmt.Errorf("jikan.throttle_delay must not be negative, got %d", c.Jikan.ThrottleDelay)
	}
	if c.Jikan.Timeout <= 0 {
		return fmt.Errorf("jikan.timeout must be positive, got %d", c.Jikan.Timeout)
	}
	if c.Server.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("server.max_requests_per_second must not be negative, got %d", c.Server.MaxRequestsPerSecond)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.max_requests_per_second", 0)

	v.SetDefault("jikan.base_url", "https://api.jikan.moe/v4")
	v.SetDefault("jikan.timeout", 30)
	v.SetDefault("jikan.throttle_delay", 350)
	v.SetDefault("jikan.page_size", 12)
	v.SetDefault("jikan.user_agent", "AnimeFlixHQ/1.0")
	v.SetDefault("jikan.proxies", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
