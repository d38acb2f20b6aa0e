package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the API server reads from the environment.
type Config struct {
	Port        string `envconfig:"APP_PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	PhotoDir    string `envconfig:"PHOTO_DIR" default:"./photos"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
