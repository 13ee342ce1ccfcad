package config

import "errors"

var (
	ErrPostgresDSNRequired = errors.New("POSTGRES_DSN is required when STORE_DRIVER=postgres")
	ErrInvalidGridSize     = errors.New("GRID_SIZE must be at least 2")
	ErrInvalidRiskProfile  = errors.New("invalid risk profile")
)
