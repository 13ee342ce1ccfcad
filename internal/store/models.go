package store

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SessionActive    = "active"
	SessionLost      = "lost"
	SessionCashedOut = "cashed_out"
)

const (
	CurrencyPoints = "points"
	CurrencyWallet = "wallet"
)

type Account struct {
	ID               string
	Balance          int64
	Wallet           int64
	FreeCredits      int
	GamesPlayed      int64
	LifetimeWinnings int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Session is the persisted record of one game. Mines and Revealed are
// row-major, GridSize*GridSize long.
type Session struct {
	ID         string
	AccountID  string
	Stake      int64
	MineCount  int
	GridSize   int
	Increment  decimal.Decimal
	Multiplier decimal.Decimal
	Winnings   int64
	SafeClicks int
	Mines      []bool
	Revealed   []bool
	Status     string
	Free       bool
	CreatedAt  time.Time
	EndedAt    *time.Time
}

func (s *Session) Index(row, col int) int {
	return row*s.GridSize + col
}

func (s *Session) Clone() Session {
	out := *s
	out.Mines = append([]bool(nil), s.Mines...)
	out.Revealed = append([]bool(nil), s.Revealed...)
	if s.EndedAt != nil {
		t := *s.EndedAt
		out.EndedAt = &t
	}
	return out
}

type LedgerEntry struct {
	ID        string
	AccountID string
	Type      string
	Currency  string
	Amount    int64
	RefType   string
	RefID     string
	CreatedAt time.Time
}

type LedgerFilter struct {
	AccountID string
	RefID     string
	From      *time.Time
	To        *time.Time
}
