package config

import "github.com/caarlos0/env/v11"

type BotConfig struct {
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:8080"`
	AccountID string `env:"ACCOUNT_ID" envDefault:""`
	Rounds    int    `env:"BOT_ROUNDS" envDefault:"10"`
	Stake     int64  `env:"BOT_STAKE" envDefault:"10"`
	MineCount int    `env:"BOT_MINE_COUNT" envDefault:"3"`
	CashOutAt int    `env:"BOT_CASHOUT_AFTER" envDefault:"3"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
