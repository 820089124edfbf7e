package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP server configuration
	Server struct {
		// Port the API listens on
		Port string `env:"SERVER_PORT" envDefault:"8000"`

		// Origin allowed by the CORS middleware
		CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`
	}

	// Pricing dataset configuration
	Pricing struct {
		// Path to the sqlite database file
		DatabasePath string `env:"PRICING_DB_PATH" envDefault:"database/pricing.db"`

		// Region used when selecting price observations
		Region string `env:"PRICING_REGION" envDefault:"Greece"`

		// Optional JSON file overriding the built-in location factors
		LocationFactorsPath string `env:"LOCATION_FACTORS_PATH"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
