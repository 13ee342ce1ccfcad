package httptransport

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"mines-casino/internal/app/account"
	"mines-casino/internal/game"
	"mines-casino/internal/ledger"
)

var statusByError = []struct {
	err    error
	status int
}{
	{game.ErrInvalidConfiguration, http.StatusBadRequest},
	{account.ErrInvalidRequest, http.StatusBadRequest},
	{ledger.ErrInvalidAmount, http.StatusBadRequest},
	{game.ErrAccountNotFound, http.StatusNotFound},
	{account.ErrAccountNotFound, http.StatusNotFound},
	{game.ErrSessionNotFound, http.StatusNotFound},
	{ledger.ErrInsufficientFunds, http.StatusPaymentRequired},
	{ledger.ErrNoFreeCredits, http.StatusPaymentRequired},
	{ledger.ErrInsufficientWallet, http.StatusPaymentRequired},
	{game.ErrSessionNotActive, http.StatusConflict},
	{game.ErrCellAlreadyRevealed, http.StatusConflict},
	{game.ErrStorageUnavailable, http.StatusServiceUnavailable},
}

// StatusFor returns the HTTP status and error code for err. Unknown errors
// map to 500 internal_error.
func StatusFor(err error) (int, string) {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Str("code", code).Msg("request failed")
	}
	WriteHTTPError(w, status, code)
}
