package config

import (
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Running localy or not
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Logging
	LogJSON bool `env:"LOG_JSON" envDefault:"false"`

	// YouTube provider settings
	YouTubeBaseURL  string        `env:"YOUTUBE_BASE_URL" envDefault:"https://www.youtube.com"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`

	// App host and port
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"5001"`
}

// Parse parses the config from the environment
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse the config; %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}

	if cfg.ProviderTimeout < 0 {
		return nil, fmt.Errorf("negative provider timeout: %s", cfg.ProviderTimeout)
	}

	return &cfg, nil
}

// New creates new config object, exits on failure
func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Addr is the address the HTTP server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
