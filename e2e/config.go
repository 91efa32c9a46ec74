package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	WSAddr  string `envconfig:"E2E_WS_ADDR"`
	APIAddr string `envconfig:"E2E_API_ADDR"`
	Token   string `envconfig:"E2E_TOKEN"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
