package game

import (
	"time"

	"github.com/shopspring/decimal"

	"mines-casino/internal/store"
)

const (
	CellUnknown = "unknown"
	CellSafe    = "safe"
	CellMine    = "mine"
)

// MaskedSession is what callers may see of a session: unrevealed cells are
// always reported as unknown.
type MaskedSession struct {
	ID         string
	AccountID  string
	Stake      int64
	MineCount  int
	GridSize   int
	Increment  decimal.Decimal
	Multiplier decimal.Decimal
	Winnings   int64
	SafeClicks int
	Status     string
	Free       bool
	Cells      [][]string
	CreatedAt  time.Time
	EndedAt    *time.Time
}

func Mask(sess *store.Session) MaskedSession {
	cells := make([][]string, sess.GridSize)
	for r := range cells {
		row := make([]string, sess.GridSize)
		for c := range row {
			i := sess.Index(r, c)
			switch {
			case !sess.Revealed[i]:
				row[c] = CellUnknown
			case sess.Mines[i]:
				row[c] = CellMine
			default:
				row[c] = CellSafe
			}
		}
		cells[r] = row
	}
	var ended *time.Time
	if sess.EndedAt != nil {
		t := *sess.EndedAt
		ended = &t
	}
	winnings := sess.Winnings
	if sess.Free || sess.Status == store.SessionLost {
		winnings = 0
	}
	return MaskedSession{
		ID:         sess.ID,
		AccountID:  sess.AccountID,
		Stake:      sess.Stake,
		MineCount:  sess.MineCount,
		GridSize:   sess.GridSize,
		Increment:  sess.Increment,
		Multiplier: sess.Multiplier,
		Winnings:   winnings,
		SafeClicks: sess.SafeClicks,
		Status:     sess.Status,
		Free:       sess.Free,
		Cells:      cells,
		CreatedAt:  sess.CreatedAt,
		EndedAt:    ended,
	}
}
