package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mines-casino/internal/ledger"
	"mines-casino/internal/store"
)

type Options struct {
	GridSize int
	Profile  MineRiskProfile
	Sampler  Sampler
	Now      func() time.Time
}

// Engine runs mines sessions. Account mutations go through the ledger and
// session mutations through the store's per-session read-modify-write, so
// neither lock is held across a whole game.
type Engine struct {
	store    store.Store
	ledger   *ledger.Ledger
	sampler  Sampler
	profile  MineRiskProfile
	gridSize int
	now      func() time.Time
}

func NewEngine(st store.Store, l *ledger.Ledger, opts Options) *Engine {
	if opts.GridSize <= 0 {
		opts.GridSize = 5
	}
	if opts.Profile.increments == nil {
		opts.Profile = DefaultRiskProfile()
	}
	if opts.Sampler == nil {
		opts.Sampler = CryptoSampler{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		store:    st,
		ledger:   l,
		sampler:  opts.Sampler,
		profile:  opts.Profile,
		gridSize: opts.GridSize,
		now:      opts.Now,
	}
}

func (e *Engine) GridSize() int            { return e.gridSize }
func (e *Engine) Profile() MineRiskProfile { return e.profile }

// StartSession debits the stake (or consumes a free credit) and creates the
// session in one unit of work.
func (e *Engine) StartSession(ctx context.Context, accountID string, stake int64, mineCount int) (*MaskedSession, error) {
	if stake < 0 || !e.profile.Supports(mineCount) {
		return nil, ErrInvalidConfiguration
	}
	mines, err := GenerateBoard(e.sampler, e.gridSize, mineCount)
	if err != nil {
		if errors.Is(err, ErrInvalidConfiguration) {
			return nil, ErrInvalidConfiguration
		}
		log.Error().Err(err).Str("account_id", accountID).Int("mine_count", mineCount).Msg("board generation failed")
		return nil, fmt.Errorf("generate board: %w", err)
	}

	id := store.NewID()
	var sess store.Session
	err = e.store.WithinTx(ctx, func(ctx context.Context) error {
		free, err := e.ledger.ReserveStake(ctx, accountID, id, stake)
		if err != nil {
			return err
		}
		sess = newSession(id, accountID, stake, mineCount, e.gridSize, e.profile.Increment(mineCount), mines, free, e.now())
		return e.store.CreateSession(ctx, sess)
	})
	if err != nil {
		err = translate(err, ErrAccountNotFound)
		e.logFailure(err, "start_session").Str("account_id", accountID).Int64("stake", stake).Int("mine_count", mineCount).Send()
		return nil, err
	}

	log.Info().
		Str("session_id", sess.ID).
		Str("account_id", accountID).
		Int64("stake", stake).
		Int("mine_count", mineCount).
		Bool("free", sess.Free).
		Msg("session_start")
	view := Mask(&sess)
	return &view, nil
}

func (e *Engine) RevealCell(ctx context.Context, sessionID string, row, col int) (RevealOutcome, error) {
	var out RevealOutcome
	_, err := e.store.UpdateSession(ctx, sessionID, func(sess *store.Session) error {
		var err error
		out, err = Reveal(sess, row, col, e.now())
		return err
	})
	if err != nil {
		err = translate(err, ErrSessionNotFound)
		e.logFailure(err, "reveal").Str("session_id", sessionID).Int("row", row).Int("col", col).Send()
		return RevealOutcome{}, err
	}

	evt := log.Debug()
	if out.Terminal() {
		evt = log.Info()
	}
	evt.Str("session_id", sessionID).
		Int("row", row).
		Int("col", col).
		Str("outcome", out.Outcome).
		Int64("winnings", out.Winnings).
		Msg("cell_revealed")
	return out, nil
}

// CashOut settles an active session. A second call fails with
// ErrSessionNotActive.
func (e *Engine) CashOut(ctx context.Context, sessionID string) (int64, error) {
	var (
		winnings  int64
		accountID string
		free      bool
	)
	err := e.store.WithinTx(ctx, func(ctx context.Context) error {
		_, err := e.store.UpdateSession(ctx, sessionID, func(sess *store.Session) error {
			var err error
			winnings, err = CashOut(sess, e.now())
			accountID, free = sess.AccountID, sess.Free
			return err
		})
		if err != nil {
			return err
		}
		if free || winnings <= 0 {
			return nil
		}
		_, err = e.ledger.Credit(ctx, accountID, sessionID, winnings)
		if err != nil {
			return translate(err, ErrAccountNotFound)
		}
		return nil
	})
	if err != nil {
		err = translate(err, ErrSessionNotFound)
		e.logFailure(err, "cash_out").Str("session_id", sessionID).Send()
		return 0, err
	}

	log.Info().
		Str("session_id", sessionID).
		Str("account_id", accountID).
		Int64("winnings", winnings).
		Msg("session_cashed_out")
	return winnings, nil
}

// GetSession returns the masked state. The mask is rebuilt on every call.
func (e *Engine) GetSession(ctx context.Context, sessionID string) (*MaskedSession, error) {
	sess, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, translate(err, ErrSessionNotFound)
	}
	view := Mask(sess)
	return &view, nil
}

// ListSessions returns an account's sessions, newest first.
func (e *Engine) ListSessions(ctx context.Context, accountID string, limit, offset int) ([]MaskedSession, error) {
	if _, err := e.store.GetAccount(ctx, accountID); err != nil {
		return nil, translate(err, ErrAccountNotFound)
	}
	sessions, err := e.store.ListSessionsByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, translate(err, ErrAccountNotFound)
	}
	out := make([]MaskedSession, 0, len(sessions))
	for i := range sessions {
		out = append(out, Mask(&sessions[i]))
	}
	return out, nil
}

func (e *Engine) logFailure(err error, op string) *zerolog.Event {
	if errors.Is(err, ErrStorageUnavailable) {
		return log.Error().Err(err).Str("op", op)
	}
	return log.Debug().Err(err).Str("op", op)
}
