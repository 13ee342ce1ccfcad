package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mines-casino/internal/game"
	"mines-casino/internal/game/viewmodel"
	"mines-casino/internal/store"
)

type SessionHandlers struct {
	engine           *game.Engine
	defaultMineCount int
}

func NewSessionHandlers(engine *game.Engine, defaultMineCount int) *SessionHandlers {
	return &SessionHandlers{engine: engine, defaultMineCount: defaultMineCount}
}

type startSessionRequest struct {
	AccountID string `json:"account_id"`
	Stake     int64  `json:"stake"`
	MineCount *int   `json:"mine_count,omitempty"`
}

type revealRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

func (h *SessionHandlers) Start() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body startSessionRequest
		if err := decodeJSON(r, &body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.AccountID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		mineCount := h.defaultMineCount
		if body.MineCount != nil {
			mineCount = *body.MineCount
		}

		metricSessionStartTotal.Add(1)
		sess, err := h.engine.StartSession(r.Context(), body.AccountID, body.Stake, mineCount)
		if err != nil {
			metricSessionStartErrors.Add(1)
			writeServiceError(w, r, err)
			return
		}
		if sess.Free {
			metricFreeSessionsTotal.Add(1)
		}
		WriteJSON(w, http.StatusCreated, viewmodel.BuildSessionView(sess))
	}
}

func (h *SessionHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.engine.GetSession(r.Context(), chi.URLParam(r, "session_id"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, viewmodel.BuildSessionView(sess))
	}
}

func (h *SessionHandlers) Reveal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body revealRequest
		if err := decodeJSON(r, &body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Row == nil || body.Col == nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		metricRevealTotal.Add(1)
		out, err := h.engine.RevealCell(r.Context(), chi.URLParam(r, "session_id"), *body.Row, *body.Col)
		if err != nil {
			metricRevealErrors.Add(1)
			writeServiceError(w, r, err)
			return
		}
		if out.Outcome == game.OutcomeMine {
			metricMineHitsTotal.Add(1)
		}
		WriteJSON(w, http.StatusOK, viewmodel.BuildRevealView(out))
	}
}

func (h *SessionHandlers) CashOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "session_id")
		metricCashOutTotal.Add(1)
		won, err := h.engine.CashOut(r.Context(), id)
		if err != nil {
			metricCashOutErrors.Add(1)
			writeServiceError(w, r, err)
			return
		}
		metricCashOutWinnings.Add(won)
		WriteJSON(w, http.StatusOK, viewmodel.CashOutView{
			SessionID: id,
			Winnings:  won,
			Status:    store.SessionCashedOut,
		})
	}
}

func (h *SessionHandlers) ListByAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.engine.ListSessions(r.Context(), chi.URLParam(r, "account_id"), limit, offset)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{
			"items":  viewmodel.BuildSessionList(items),
			"limit":  limit,
			"offset": offset,
		})
	}
}
