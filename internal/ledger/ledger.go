package ledger

import (
	"context"
	"errors"

	"mines-casino/internal/store"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient_funds")
	ErrNoFreeCredits      = errors.New("no_free_credits")
	ErrInsufficientWallet = errors.New("insufficient_wallet_balance")
	ErrInvalidAmount      = errors.New("invalid_amount")
)

// Journal entry types.
const (
	EntryStakeDebit        = "stake_debit"
	EntryWinningsCredit    = "winnings_credit"
	EntryFreeCreditConsume = "free_credit_consume"
	EntryPointsTopup       = "points_topup"
	EntryWalletDeposit     = "wallet_deposit"
	EntryWalletWithdraw    = "wallet_withdraw"
)

const (
	RefSession = "session"
	RefAccount = "account"
)

type Options struct {
	// MirrorWinningsToWallet also credits cashed-out winnings to the
	// secondary wallet balance.
	MirrorWinningsToWallet bool
}

// Ledger applies balance mutations to one account at a time. Every method is
// a single atomic read-modify-write through the store, and its journal entry
// is written in the same unit of work.
type Ledger struct {
	Store store.Store
	opts  Options
}

func New(s store.Store, opts Options) *Ledger {
	return &Ledger{Store: s, opts: opts}
}

// Debit takes amount points from the account balance.
func (l *Ledger) Debit(ctx context.Context, accountID, sessionID string, amount int64) (*store.Account, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	return l.apply(ctx, accountID, func(acc *store.Account) error {
		if acc.Balance < amount {
			return ErrInsufficientFunds
		}
		acc.Balance -= amount
		return nil
	}, entry(EntryStakeDebit, store.CurrencyPoints, -amount, RefSession, sessionID))
}

// Credit pays winnings into the balance and the lifetime winnings counter.
// Games played is left untouched.
func (l *Ledger) Credit(ctx context.Context, accountID, sessionID string, amount int64) (*store.Account, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	entries := []store.LedgerEntry{entry(EntryWinningsCredit, store.CurrencyPoints, amount, RefSession, sessionID)}
	if l.opts.MirrorWinningsToWallet {
		entries = append(entries, entry(EntryWinningsCredit, store.CurrencyWallet, amount, RefSession, sessionID))
	}
	return l.apply(ctx, accountID, func(acc *store.Account) error {
		acc.Balance += amount
		acc.LifetimeWinnings += amount
		if l.opts.MirrorWinningsToWallet {
			acc.Wallet += amount
		}
		return nil
	}, entries...)
}

func (l *Ledger) ConsumeFreeCredit(ctx context.Context, accountID, sessionID string) (*store.Account, error) {
	return l.apply(ctx, accountID, func(acc *store.Account) error {
		if acc.FreeCredits <= 0 {
			return ErrNoFreeCredits
		}
		acc.FreeCredits--
		return nil
	}, entry(EntryFreeCreditConsume, store.CurrencyPoints, 0, RefSession, sessionID))
}

func (l *Ledger) IncrementGamesPlayed(ctx context.Context, accountID string) (*store.Account, error) {
	return l.apply(ctx, accountID, func(acc *store.Account) error {
		acc.GamesPlayed++
		return nil
	})
}

// ReserveStake settles the account side of a session start in one
// read-modify-write: the session is free iff stake is zero and a free credit
// is left; otherwise the stake is debited. Games played is incremented either
// way. It reports whether the session is free.
func (l *Ledger) ReserveStake(ctx context.Context, accountID, sessionID string, stake int64) (bool, error) {
	if stake < 0 {
		return false, ErrInvalidAmount
	}
	var free bool
	err := l.Store.WithinTx(ctx, func(ctx context.Context) error {
		_, err := l.Store.UpdateAccount(ctx, accountID, func(acc *store.Account) error {
			free = stake == 0 && acc.FreeCredits > 0
			if free {
				acc.FreeCredits--
			} else {
				if acc.Balance < stake {
					return ErrInsufficientFunds
				}
				acc.Balance -= stake
			}
			acc.GamesPlayed++
			return nil
		})
		if err != nil {
			return err
		}
		e := entry(EntryStakeDebit, store.CurrencyPoints, -stake, RefSession, sessionID)
		if free {
			e = entry(EntryFreeCreditConsume, store.CurrencyPoints, 0, RefSession, sessionID)
		}
		e.AccountID = accountID
		return l.Store.AppendLedgerEntry(ctx, e)
	})
	if err != nil {
		return false, err
	}
	return free, nil
}

// AddPoints tops up the playable balance. Amounts under minimum are rejected.
func (l *Ledger) AddPoints(ctx context.Context, accountID string, amount, minimum int64) (*store.Account, error) {
	if amount <= 0 || amount < minimum {
		return nil, ErrInvalidAmount
	}
	return l.apply(ctx, accountID, func(acc *store.Account) error {
		acc.Balance += amount
		return nil
	}, entry(EntryPointsTopup, store.CurrencyPoints, amount, RefAccount, accountID))
}

func (l *Ledger) DepositWallet(ctx context.Context, accountID string, amount, minimum int64) (*store.Account, error) {
	if amount <= 0 || amount < minimum {
		return nil, ErrInvalidAmount
	}
	return l.apply(ctx, accountID, func(acc *store.Account) error {
		acc.Wallet += amount
		return nil
	}, entry(EntryWalletDeposit, store.CurrencyWallet, amount, RefAccount, accountID))
}

func (l *Ledger) WithdrawWallet(ctx context.Context, accountID string, amount, minimum int64) (*store.Account, error) {
	if amount <= 0 || amount < minimum {
		return nil, ErrInvalidAmount
	}
	return l.apply(ctx, accountID, func(acc *store.Account) error {
		if acc.Wallet < amount {
			return ErrInsufficientWallet
		}
		acc.Wallet -= amount
		return nil
	}, entry(EntryWalletWithdraw, store.CurrencyWallet, -amount, RefAccount, accountID))
}

func (l *Ledger) apply(ctx context.Context, accountID string, fn func(*store.Account) error, entries ...store.LedgerEntry) (*store.Account, error) {
	var out *store.Account
	err := l.Store.WithinTx(ctx, func(ctx context.Context) error {
		acc, err := l.Store.UpdateAccount(ctx, accountID, fn)
		if err != nil {
			return err
		}
		for _, e := range entries {
			e.AccountID = accountID
			if err := l.Store.AppendLedgerEntry(ctx, e); err != nil {
				return err
			}
		}
		out = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func entry(typ, currency string, amount int64, refType, refID string) store.LedgerEntry {
	return store.LedgerEntry{
		Type:     typ,
		Currency: currency,
		Amount:   amount,
		RefType:  refType,
		RefID:    refID,
	}
}
