package viewmodel

import (
	"time"

	"mines-casino/internal/game"
	"mines-casino/internal/store"
)

type SessionView struct {
	SessionID          string     `json:"session_id"`
	AccountID          string     `json:"account_id"`
	Stake              int64      `json:"stake"`
	MineCount          int        `json:"mine_count"`
	GridSize           int        `json:"grid_size"`
	IncrementPercent   float64    `json:"increment_percent"`
	Multiplier         float64    `json:"multiplier"`
	CurrentWinnings    int64      `json:"current_winnings"`
	SafeClicks         int        `json:"safe_clicks"`
	Status             string     `json:"status"`
	IsFree             bool       `json:"is_free"`
	Grid               [][]string `json:"grid"`
	CreatedAt          time.Time  `json:"created_at"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	RemainingSafeCells int        `json:"remaining_safe_cells"`
}

type RevealView struct {
	SessionID       string  `json:"session_id"`
	Row             int     `json:"row"`
	Col             int     `json:"col"`
	Outcome         string  `json:"outcome"`
	SafeClicks      int     `json:"safe_clicks"`
	Multiplier      float64 `json:"multiplier"`
	CurrentWinnings int64   `json:"current_winnings"`
	Status          string  `json:"status"`
	GameOver        bool    `json:"game_over"`
}

type CashOutView struct {
	SessionID string `json:"session_id"`
	Winnings  int64  `json:"winnings"`
	Status    string `json:"status"`
}

func BuildSessionView(s *game.MaskedSession) SessionView {
	grid := make([][]string, len(s.Cells))
	for i, row := range s.Cells {
		grid[i] = append([]string(nil), row...)
	}
	return SessionView{
		SessionID:          s.ID,
		AccountID:          s.AccountID,
		Stake:              s.Stake,
		MineCount:          s.MineCount,
		GridSize:           s.GridSize,
		IncrementPercent:   s.Increment.Shift(2).InexactFloat64(),
		Multiplier:         s.Multiplier.InexactFloat64(),
		CurrentWinnings:    s.Winnings,
		SafeClicks:         s.SafeClicks,
		Status:             s.Status,
		IsFree:             s.Free,
		Grid:               grid,
		CreatedAt:          s.CreatedAt,
		EndedAt:            s.EndedAt,
		RemainingSafeCells: s.GridSize*s.GridSize - s.MineCount - s.SafeClicks,
	}
}

func BuildSessionList(sessions []game.MaskedSession) []SessionView {
	out := make([]SessionView, 0, len(sessions))
	for i := range sessions {
		out = append(out, BuildSessionView(&sessions[i]))
	}
	return out
}

func BuildRevealView(o game.RevealOutcome) RevealView {
	return RevealView{
		SessionID:       o.SessionID,
		Row:             o.Row,
		Col:             o.Col,
		Outcome:         o.Outcome,
		SafeClicks:      o.SafeClicks,
		Multiplier:      o.Multiplier.InexactFloat64(),
		CurrentWinnings: o.Winnings,
		Status:          o.Status,
		GameOver:        o.Status != store.SessionActive,
	}
}
