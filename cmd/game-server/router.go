package main

import (
	"github.com/go-chi/chi/v5"

	"mines-casino/internal/app/account"
	"mines-casino/internal/config"
	"mines-casino/internal/game"
	"mines-casino/internal/store"
	httptransport "mines-casino/internal/transport/http"
)

func newRouter(st store.Store, engine *game.Engine, accounts *account.Service, srv config.ServerConfig, gameCfg config.GameConfig) *chi.Mux {
	return httptransport.NewRouter(httptransport.Deps{
		Store:            st,
		Engine:           engine,
		Accounts:         accounts,
		Server:           srv,
		DefaultMineCount: gameCfg.DefaultMineCount,
	})
}

func logRoutes(r chi.Router) {
	httptransport.LogRoutes(r)
}
