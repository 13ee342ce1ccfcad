package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"mines-casino/internal/app/account"
	"mines-casino/internal/config"
	"mines-casino/internal/game"
	"mines-casino/internal/ledger"
	"mines-casino/internal/logging"
	"mines-casino/internal/store"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		panic(err)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Server.StoreDriver, cfg.Server.PostgresDSN, cfg.Server.AutoMigrate)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Server.StoreDriver).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("store ping failed")
	}

	engine, accounts, err := buildServices(st, cfg.Game)
	if err != nil {
		log.Fatal().Err(err).Msg("game setup failed")
	}
	r := newRouter(st, engine, accounts, cfg.Server, cfg.Game)
	logRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().
		Str("addr", cfg.Server.HTTPAddr).
		Str("store", cfg.Server.StoreDriver).
		Int("grid_size", cfg.Game.GridSize).
		Msg("http listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func buildServices(st store.Store, cfg config.GameConfig) (*game.Engine, *account.Service, error) {
	profile := game.DefaultRiskProfile()
	increments, err := config.LoadRiskProfile(cfg.RiskProfilePath)
	if err != nil {
		return nil, nil, err
	}
	if increments != nil {
		if profile, err = game.NewRiskProfile(increments); err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.RiskProfilePath).Ints("mine_counts", profile.MineCounts()).Msg("risk profile loaded")
	}
	if !profile.Supports(cfg.DefaultMineCount) {
		return nil, nil, errors.New("DEFAULT_MINE_COUNT is not in the risk profile")
	}
	cells := cfg.GridSize * cfg.GridSize
	for _, c := range profile.MineCounts() {
		if c >= cells {
			return nil, nil, fmt.Errorf("risk profile mine count %d does not fit a %dx%d grid", c, cfg.GridSize, cfg.GridSize)
		}
	}

	led := ledger.New(st, ledger.Options{MirrorWinningsToWallet: cfg.MirrorWinningsToWallet})
	engine := game.NewEngine(st, led, game.Options{
		GridSize: cfg.GridSize,
		Profile:  profile,
	})
	accounts := account.NewService(st, led, account.DefaultsFromConfig(cfg))
	return engine, accounts, nil
}
