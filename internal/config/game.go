package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type GameConfig struct {
	GridSize         int    `env:"GRID_SIZE" envDefault:"5"`
	RiskProfilePath  string `env:"RISK_PROFILE_PATH"`
	DefaultMineCount int    `env:"DEFAULT_MINE_COUNT" envDefault:"3"`

	StartingPoints      int64 `env:"STARTING_POINTS" envDefault:"1000"`
	StartingWallet      int64 `env:"STARTING_WALLET" envDefault:"100"`
	StartingFreeCredits int   `env:"STARTING_FREE_CREDITS" envDefault:"3"`

	MinTopupPoints         int64 `env:"MIN_TOPUP_POINTS" envDefault:"100"`
	MinWalletTransfer      int64 `env:"MIN_WALLET_TRANSFER" envDefault:"10"`
	MirrorWinningsToWallet bool  `env:"MIRROR_WINNINGS_TO_WALLET" envDefault:"false"`
}

func LoadGame() (GameConfig, error) {
	var cfg GameConfig
	if err := env.Parse(&cfg); err != nil {
		return GameConfig{}, err
	}
	if cfg.GridSize < 2 {
		return GameConfig{}, ErrInvalidGridSize
	}
	return cfg, nil
}

// RiskProfileFile is the on-disk shape of a mine risk table:
//
//	increments:
//	  1: 5.0
//	  2: 8.0
//
// Values are percentages awarded per safe reveal.
type RiskProfileFile struct {
	Increments map[int]float64 `yaml:"increments"`
}

// LoadRiskProfile reads the increment table at path. An empty path returns
// nil increments, meaning the built-in table.
func LoadRiskProfile(path string) (map[int]float64, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f RiskProfileFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRiskProfile, err)
	}
	if len(f.Increments) == 0 {
		return nil, fmt.Errorf("%w: no increments in %s", ErrInvalidRiskProfile, path)
	}
	return f.Increments, nil
}
