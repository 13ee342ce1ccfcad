package viewmodel

import (
	"time"

	"mines-casino/internal/store"
)

type AccountView struct {
	AccountID        string    `json:"account_id"`
	Points           int64     `json:"points"`
	WalletBalance    int64     `json:"wallet_balance"`
	FreeCredits      int       `json:"free_credits"`
	GamesPlayed      int64     `json:"games_played"`
	LifetimeWinnings int64     `json:"lifetime_winnings"`
	CreatedAt        time.Time `json:"created_at"`
}

type LedgerEntryView struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Type      string    `json:"type"`
	Currency  string    `json:"currency"`
	Amount    int64     `json:"amount"`
	RefType   string    `json:"ref_type,omitempty"`
	RefID     string    `json:"ref_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func BuildAccountView(a *store.Account) AccountView {
	return AccountView{
		AccountID:        a.ID,
		Points:           a.Balance,
		WalletBalance:    a.Wallet,
		FreeCredits:      a.FreeCredits,
		GamesPlayed:      a.GamesPlayed,
		LifetimeWinnings: a.LifetimeWinnings,
		CreatedAt:        a.CreatedAt,
	}
}

func BuildLedgerView(entries []store.LedgerEntry) []LedgerEntryView {
	out := make([]LedgerEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, LedgerEntryView{
			ID:        e.ID,
			AccountID: e.AccountID,
			Type:      e.Type,
			Currency:  e.Currency,
			Amount:    e.Amount,
			RefType:   e.RefType,
			RefID:     e.RefID,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
