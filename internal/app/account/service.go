package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"mines-casino/internal/config"
	"mines-casino/internal/game"
	"mines-casino/internal/ledger"
	"mines-casino/internal/store"
)

// Defaults are the balances a new account starts with and the minimum
// amounts accepted for top-ups and wallet transfers.
type Defaults struct {
	StartingPoints      int64
	StartingWallet      int64
	StartingFreeCredits int
	MinTopupPoints      int64
	MinWalletTransfer   int64
}

func DefaultsFromConfig(cfg config.GameConfig) Defaults {
	return Defaults{
		StartingPoints:      cfg.StartingPoints,
		StartingWallet:      cfg.StartingWallet,
		StartingFreeCredits: cfg.StartingFreeCredits,
		MinTopupPoints:      cfg.MinTopupPoints,
		MinWalletTransfer:   cfg.MinWalletTransfer,
	}
}

type Service struct {
	store    store.Store
	ledger   *ledger.Ledger
	defaults Defaults
}

const ledgerMaxRows = 500

func NewService(st store.Store, l *ledger.Ledger, d Defaults) *Service {
	return &Service{store: st, ledger: l, defaults: d}
}

func (s *Service) Create(ctx context.Context) (*store.Account, error) {
	acc := store.Account{
		ID:          store.NewID(),
		Balance:     s.defaults.StartingPoints,
		Wallet:      s.defaults.StartingWallet,
		FreeCredits: s.defaults.StartingFreeCredits,
	}
	if err := s.store.CreateAccount(ctx, acc); err != nil {
		return nil, translate(err)
	}
	log.Info().Str("account_id", acc.ID).Int64("points", acc.Balance).Int("free_credits", acc.FreeCredits).Msg("account_created")
	out, err := s.store.GetAccount(ctx, acc.ID)
	return out, translate(err)
}

func (s *Service) Get(ctx context.Context, id string) (*store.Account, error) {
	acc, err := s.store.GetAccount(ctx, id)
	return acc, translate(err)
}

func (s *Service) AddPoints(ctx context.Context, id string, points int64) (*store.Account, error) {
	acc, err := s.ledger.AddPoints(ctx, id, points, s.defaults.MinTopupPoints)
	return acc, translate(err)
}

func (s *Service) Deposit(ctx context.Context, id string, amount int64) (*store.Account, error) {
	acc, err := s.ledger.DepositWallet(ctx, id, amount, s.defaults.MinWalletTransfer)
	return acc, translate(err)
}

func (s *Service) Withdraw(ctx context.Context, id string, amount int64) (*store.Account, error) {
	acc, err := s.ledger.WithdrawWallet(ctx, id, amount, s.defaults.MinWalletTransfer)
	return acc, translate(err)
}

type LedgerQuery struct {
	AccountID string
	RefID     string
	From      string
	To        string
	Limit     int
	Offset    int
}

// Ledger lists journal entries newest first. From and To are RFC 3339.
func (s *Service) Ledger(ctx context.Context, q LedgerQuery) ([]store.LedgerEntry, error) {
	f := store.LedgerFilter{AccountID: q.AccountID, RefID: q.RefID}
	var err error
	if f.From, err = parseTime(q.From); err != nil {
		return nil, err
	}
	if f.To, err = parseTime(q.To); err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit > ledgerMaxRows {
		limit = ledgerMaxRows
	}
	entries, err := s.store.ListLedgerEntries(ctx, f, limit, q.Offset)
	return entries, translate(err)
}

func parseTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return &t, nil
}

var passThrough = []error{
	ErrInvalidRequest,
	ledger.ErrInvalidAmount,
	ledger.ErrInsufficientFunds,
	ledger.ErrInsufficientWallet,
}

// translate maps a missing record to ErrAccountNotFound and any unrecognised
// failure to game.ErrStorageUnavailable.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	for _, k := range passThrough {
		if errors.Is(err, k) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", game.ErrStorageUnavailable, err)
}
