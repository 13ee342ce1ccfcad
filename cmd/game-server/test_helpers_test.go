package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"mines-casino/internal/app/account"
	"mines-casino/internal/config"
	"mines-casino/internal/game"
	"mines-casino/internal/ledger"
	"mines-casino/internal/store"
)

// topRowSampler lays mines along the first row, left to right, so the
// bottom rows are always safe.
type topRowSampler struct{}

func (topRowSampler) Sample(_, k int) ([]int, error) {
	out := make([]int, k)
	for i := range out {
		out[i] = i
	}
	return out, nil
}

func testGameConfig() config.GameConfig {
	return config.GameConfig{
		GridSize:            5,
		DefaultMineCount:    3,
		StartingPoints:      1000,
		StartingWallet:      100,
		StartingFreeCredits: 3,
		MinTopupPoints:      100,
		MinWalletTransfer:   10,
	}
}

func newTestRouter(st store.Store, cfg config.ServerConfig) *chi.Mux {
	gameCfg := testGameConfig()
	led := ledger.New(st, ledger.Options{MirrorWinningsToWallet: gameCfg.MirrorWinningsToWallet})
	engine := game.NewEngine(st, led, game.Options{GridSize: gameCfg.GridSize, Sampler: topRowSampler{}})
	accounts := account.NewService(st, led, account.DefaultsFromConfig(gameCfg))
	return newRouter(st, engine, accounts, cfg, gameCfg)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if header != nil {
		req.Header = header.Clone()
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

type accountResp struct {
	AccountID        string `json:"account_id"`
	Points           int64  `json:"points"`
	WalletBalance    int64  `json:"wallet_balance"`
	FreeCredits      int    `json:"free_credits"`
	GamesPlayed      int64  `json:"games_played"`
	LifetimeWinnings int64  `json:"lifetime_winnings"`
}

type sessionResp struct {
	SessionID        string     `json:"session_id"`
	Stake            int64      `json:"stake"`
	MineCount        int        `json:"mine_count"`
	IncrementPercent float64    `json:"increment_percent"`
	Multiplier       float64    `json:"multiplier"`
	CurrentWinnings  int64      `json:"current_winnings"`
	Status           string     `json:"status"`
	IsFree           bool       `json:"is_free"`
	Grid             [][]string `json:"grid"`
}

func createAccount(t *testing.T, router http.Handler) accountResp {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/accounts", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create account expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var acc accountResp
	decodeBody(t, w, &acc)
	return acc
}
