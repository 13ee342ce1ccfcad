package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mines-casino/internal/config"
	"mines-casino/internal/store"
)

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
	var errResp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp["error"] != code {
		t.Fatalf("expected %s, got %q", code, errResp["error"])
	}
}

func TestErrorResponsesAreJSON(t *testing.T) {
	router := newTestRouter(store.NewMemory(), config.ServerConfig{})
	acc := createAccount(t, router)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"bad json", http.MethodPost, "/api/sessions", "{", http.StatusBadRequest, "invalid_json"},
		{"unknown field", http.MethodPost, "/api/sessions", `{"account_id":"a","bet":1}`, http.StatusBadRequest, "invalid_json"},
		{"missing account", http.MethodPost, "/api/sessions", `{"stake":1}`, http.StatusBadRequest, "invalid_request"},
		{"unknown account", http.MethodPost, "/api/sessions", `{"account_id":"ghost","stake":1}`, http.StatusNotFound, "account_not_found"},
		{"mine count too high", http.MethodPost, "/api/sessions", `{"account_id":"` + acc.AccountID + `","stake":1,"mine_count":9}`, http.StatusBadRequest, "invalid_configuration"},
		{"mine count zero", http.MethodPost, "/api/sessions", `{"account_id":"` + acc.AccountID + `","stake":1,"mine_count":0}`, http.StatusBadRequest, "invalid_configuration"},
		{"negative stake", http.MethodPost, "/api/sessions", `{"account_id":"` + acc.AccountID + `","stake":-5}`, http.StatusBadRequest, "invalid_configuration"},
		{"unknown session", http.MethodGet, "/api/sessions/nope", "", http.StatusNotFound, "session_not_found"},
		{"reveal unknown session", http.MethodPost, "/api/sessions/nope/reveal", `{"row":0,"col":0}`, http.StatusNotFound, "session_not_found"},
		{"reveal missing col", http.MethodPost, "/api/sessions/nope/reveal", `{"row":0}`, http.StatusBadRequest, "invalid_request"},
		{"cashout unknown session", http.MethodPost, "/api/sessions/nope/cashout", "", http.StatusNotFound, "session_not_found"},
		{"unknown account get", http.MethodGet, "/api/accounts/ghost", "", http.StatusNotFound, "account_not_found"},
		{"unknown account sessions", http.MethodGet, "/api/accounts/ghost/sessions", "", http.StatusNotFound, "account_not_found"},
		{"unknown route", http.MethodGet, "/api/nothing", "", http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, tt.method, tt.path, tt.body, nil)
			assertErrorCode(t, w, tt.status, tt.code)
		})
	}
}

func TestRevealOutOfBounds(t *testing.T) {
	router := newTestRouter(store.NewMemory(), config.ServerConfig{})
	acc := createAccount(t, router)
	w := doRequest(t, router, http.MethodPost, "/api/sessions", `{"account_id":"`+acc.AccountID+`","stake":10}`, nil)
	var sess sessionResp
	decodeBody(t, w, &sess)

	for _, body := range []string{`{"row":5,"col":0}`, `{"row":0,"col":-1}`} {
		w = doRequest(t, router, http.MethodPost, "/api/sessions/"+sess.SessionID+"/reveal", body, nil)
		assertErrorCode(t, w, http.StatusBadRequest, "invalid_configuration")
	}
}
