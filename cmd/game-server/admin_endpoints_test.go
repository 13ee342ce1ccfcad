package main

import (
	"net/http"
	"testing"

	"mines-casino/internal/config"
	"mines-casino/internal/store"
)

func TestAdminEndpointsAuthAndBasicBehavior(t *testing.T) {
	router := newTestRouter(store.NewMemory(), config.ServerConfig{AdminAPIKey: "admin-key"})
	acc := createAccount(t, router)
	w := doRequest(t, router, http.MethodPost, "/api/sessions", `{"account_id":"`+acc.AccountID+`","stake":100,"mine_count":1}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("start session expected 201, got %d", w.Code)
	}

	for _, path := range []string{"/api/admin/ledger", "/api/admin/debug/vars"} {
		w := doRequest(t, router, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("unauth %s expected 401, got %d", path, w.Code)
		}
	}

	adminHeader := http.Header{"X-Admin-Key": []string{"admin-key"}}
	w = doRequest(t, router, http.MethodGet, "/api/admin/ledger?account_id="+acc.AccountID, "", adminHeader)
	if w.Code != http.StatusOK {
		t.Fatalf("ledger expected 200, got %d", w.Code)
	}
	var ledger struct {
		Items []struct {
			Type   string `json:"type"`
			Amount int64  `json:"amount"`
		} `json:"items"`
	}
	decodeBody(t, w, &ledger)
	if len(ledger.Items) != 1 || ledger.Items[0].Type != "stake_debit" || ledger.Items[0].Amount != -100 {
		t.Fatalf("unexpected ledger: %+v", ledger.Items)
	}

	w = doRequest(t, router, http.MethodGet, "/api/admin/ledger?from=yesterday", "", adminHeader)
	assertErrorCode(t, w, http.StatusBadRequest, "invalid_request")

	w = doRequest(t, router, http.MethodGet, "/api/admin/debug/vars", "", http.Header{"Authorization": []string{"Bearer admin-key"}})
	if w.Code != http.StatusOK {
		t.Fatalf("debug vars expected 200, got %d", w.Code)
	}
	var vars map[string]any
	decodeBody(t, w, &vars)
	if _, ok := vars["session_start_total"]; !ok {
		t.Fatal("expected session_start_total in expvar output")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(store.NewMemory(), config.ServerConfig{})
	w := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz expected 200, got %d", w.Code)
	}
	var resp map[string]any
	decodeBody(t, w, &resp)
	if resp["ok"] != true {
		t.Fatalf("unexpected healthz body: %v", resp)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(store.NewMemory(), config.ServerConfig{CORSAllowedOrigins: []string{"https://play.example"}})
	header := http.Header{
		"Origin":                        []string{"https://play.example"},
		"Access-Control-Request-Method": []string{http.MethodPost},
	}
	w := doRequest(t, router, http.MethodOptions, "/api/sessions", "", header)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://play.example" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}
