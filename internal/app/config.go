package app

import (
	"errors"

	"github.com/vk/avrotype/resolver"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SchemaPaths []string // schema files or directories
	ConfigPath  string   // hcl file or directory

	// Name, when set, is resolved and instantiated on its own, wrapped
	// according to Container.
	Name      string
	Container resolver.Container

	LogFormat string
	LogLevel  string
	ServePort int
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.SchemaPaths) == 0 && cfg.Name == "" {
		return nil, errors.New("at least one schema path or a type name is required")
	}
	if cfg.ServePort < 0 || cfg.ServePort > 65535 {
		return nil, errors.New("serve port must be between 0 and 65535")
	}
	return &cfg, nil
}
