package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	PostgresDSN string `env:"POSTGRES_DSN"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	AdminAPIKey        string   `env:"ADMIN_API_KEY"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, err
	}
	if cfg.StoreDriver == "postgres" && cfg.PostgresDSN == "" {
		return ServerConfig{}, ErrPostgresDSNRequired
	}
	return cfg, nil
}
