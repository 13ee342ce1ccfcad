package game

import (
	"time"

	"github.com/shopspring/decimal"

	"mines-casino/internal/store"
)

const (
	OutcomeSafe = "safe"
	OutcomeMine = "mine"
)

type RevealOutcome struct {
	SessionID  string
	Row        int
	Col        int
	Outcome    string
	SafeClicks int
	Multiplier decimal.Decimal
	Winnings   int64
	Status     string
}

func (o RevealOutcome) Terminal() bool {
	return o.Status != store.SessionActive
}

// Reveal uncovers one cell of an active session in place. The revealed flag
// is set whether or not the cell holds a mine.
func Reveal(sess *store.Session, row, col int, now time.Time) (RevealOutcome, error) {
	if sess.Status != store.SessionActive {
		return RevealOutcome{}, ErrSessionNotActive
	}
	if row < 0 || col < 0 || row >= sess.GridSize || col >= sess.GridSize {
		return RevealOutcome{}, ErrInvalidConfiguration
	}
	i := sess.Index(row, col)
	if sess.Revealed[i] {
		return RevealOutcome{}, ErrCellAlreadyRevealed
	}
	sess.Revealed[i] = true

	out := RevealOutcome{SessionID: sess.ID, Row: row, Col: col}
	if sess.Mines[i] {
		sess.Status = store.SessionLost
		sess.Winnings = 0
		sess.EndedAt = &now
		out.Outcome = OutcomeMine
	} else {
		sess.SafeClicks++
		sess.Multiplier = Multiplier(sess.SafeClicks, sess.Increment)
		sess.Winnings = Winnings(sess.Stake, sess.Multiplier, sess.Free)
		out.Outcome = OutcomeSafe
	}
	out.SafeClicks = sess.SafeClicks
	out.Multiplier = sess.Multiplier
	out.Winnings = sess.Winnings
	out.Status = sess.Status
	return out, nil
}

// CashOut closes an active session and returns the winnings to pay out.
func CashOut(sess *store.Session, now time.Time) (int64, error) {
	if sess.Status != store.SessionActive {
		return 0, ErrSessionNotActive
	}
	sess.Status = store.SessionCashedOut
	sess.EndedAt = &now
	if sess.Free {
		sess.Winnings = 0
	}
	return sess.Winnings, nil
}

// newSession builds the initial active state. A paid session starts with its
// stake shown as current winnings.
func newSession(id, accountID string, stake int64, mineCount, gridSize int, increment decimal.Decimal, mines []bool, free bool, now time.Time) store.Session {
	winnings := stake
	if free {
		winnings = 0
	}
	return store.Session{
		ID:         id,
		AccountID:  accountID,
		Stake:      stake,
		MineCount:  mineCount,
		GridSize:   gridSize,
		Increment:  increment,
		Multiplier: decimal.NewFromInt(1),
		Winnings:   winnings,
		Mines:      mines,
		Revealed:   make([]bool, len(mines)),
		Status:     store.SessionActive,
		Free:       free,
		CreatedAt:  now,
	}
}
