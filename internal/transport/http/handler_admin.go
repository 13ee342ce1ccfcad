package httptransport

import (
	"context"
	"net/http"
	"time"

	"mines-casino/internal/app/account"
	"mines-casino/internal/game/viewmodel"
	"mines-casino/internal/store"
)

type AdminHandlers struct {
	store    store.Store
	accounts *account.Service
}

func NewAdminHandlers(st store.Store, accounts *account.Service) *AdminHandlers {
	return &AdminHandlers{store: st, accounts: accounts}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "store": "down"})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "store": "up"})
	}
}

func (h *AdminHandlers) Ledger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		q := r.URL.Query()
		items, err := h.accounts.Ledger(r.Context(), account.LedgerQuery{
			AccountID: q.Get("account_id"),
			RefID:     q.Get("ref_id"),
			From:      q.Get("from"),
			To:        q.Get("to"),
			Limit:     limit,
			Offset:    offset,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{
			"items":  viewmodel.BuildLedgerView(items),
			"limit":  limit,
			"offset": offset,
		})
	}
}
