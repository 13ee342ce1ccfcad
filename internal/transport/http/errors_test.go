package httptransport

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"mines-casino/internal/app/account"
	"mines-casino/internal/game"
	"mines-casino/internal/ledger"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{game.ErrInvalidConfiguration, http.StatusBadRequest, "invalid_configuration"},
		{ledger.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
		{account.ErrInvalidRequest, http.StatusBadRequest, "invalid_request"},
		{game.ErrAccountNotFound, http.StatusNotFound, "account_not_found"},
		{account.ErrAccountNotFound, http.StatusNotFound, "account_not_found"},
		{game.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
		{game.ErrInsufficientFunds, http.StatusPaymentRequired, "insufficient_funds"},
		{game.ErrNoFreeCreditsAvailable, http.StatusPaymentRequired, "no_free_credits"},
		{ledger.ErrInsufficientWallet, http.StatusPaymentRequired, "insufficient_wallet_balance"},
		{game.ErrSessionNotActive, http.StatusConflict, "session_not_active"},
		{game.ErrCellAlreadyRevealed, http.StatusConflict, "cell_already_revealed"},
		{fmt.Errorf("%w: conn refused", game.ErrStorageUnavailable), http.StatusServiceUnavailable, "storage_unavailable"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		status, code := StatusFor(tt.err)
		if status != tt.wantStatus || code != tt.wantCode {
			t.Fatalf("StatusFor(%v) = %d %q, want %d %q", tt.err, status, code, tt.wantStatus, tt.wantCode)
		}
	}
}
