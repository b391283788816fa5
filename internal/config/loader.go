package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultConfigPath is tried when CONFIG_PATH is unset.
const defaultConfigPath = "./config.yaml"

// Load assembles the configuration from a YAML file plus environment
// variables, ENV taking precedence and env-default tags filling the rest.
// CONFIG_PATH selects the file; without it the loader tries ./config.yaml
// and, when that is absent too, falls back to ENV and defaults alone. A
// CONFIG_PATH that points at a missing file is an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
