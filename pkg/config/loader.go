package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"

	"github.com/mohamed-2473/Store/pkg/validator"
)

// Load parses environment variables into the provided struct and then checks
// its `validate` tags.
//
// Example:
//
//	type Config struct {
//	    BaseURL  string `env:"CATALOG_API_BASE_URL" envDefault:"https://dummyjson.com" validate:"url"`
//	    LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := validator.Validate(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}
