package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mines-casino/internal/app/account"
	"mines-casino/internal/game/viewmodel"
	"mines-casino/internal/store"
)

type AccountHandlers struct {
	svc *account.Service
}

func NewAccountHandlers(svc *account.Service) *AccountHandlers {
	return &AccountHandlers{svc: svc}
}

func (h *AccountHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, err := h.svc.Create(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		metricAccountsCreated.Add(1)
		WriteJSON(w, http.StatusCreated, viewmodel.BuildAccountView(acc))
	}
}

func (h *AccountHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, err := h.svc.Get(r.Context(), chi.URLParam(r, "account_id"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, viewmodel.BuildAccountView(acc))
	}
}

func (h *AccountHandlers) AddPoints() http.HandlerFunc {
	return h.transfer("points", h.svc.AddPoints)
}

func (h *AccountHandlers) Deposit() http.HandlerFunc {
	return h.transfer("amount", h.svc.Deposit)
}

func (h *AccountHandlers) Withdraw() http.HandlerFunc {
	return h.transfer("amount", h.svc.Withdraw)
}

type transferFunc func(ctx context.Context, accountID string, amount int64) (*store.Account, error)

// transfer decodes {"<field>": n} and applies fn to the path account.
func (h *AccountHandlers) transfer(field string, fn transferFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int64
		if err := decodeJSON(r, &body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		amount, ok := body[field]
		if !ok || len(body) != 1 {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		acc, err := fn(r.Context(), chi.URLParam(r, "account_id"), amount)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, viewmodel.BuildAccountView(acc))
	}
}
