package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
)

var accountColumns = []string{
	"id", "balance", "wallet", "free_credits", "games_played", "lifetime_winnings", "created_at", "updated_at",
}

func (s *PostgresStore) CreateAccount(ctx context.Context, acc Account) error {
	now := time.Now()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
	}
	query, args, err := s.sb.Insert(accountsTable).
		Columns(accountColumns...).
		Values(acc.ID, acc.Balance, acc.Wallet, acc.FreeCredits, acc.GamesPlayed, acc.LifetimeWinnings, acc.CreatedAt, now).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.conn(ctx).Exec(ctx, query, args...); err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (s *PostgresStore) GetAccount(ctx context.Context, id string) (*Account, error) {
	return s.selectAccount(ctx, id, false)
}

func (s *PostgresStore) UpdateAccount(ctx context.Context, id string, fn func(*Account) error) (*Account, error) {
	var out *Account
	err := s.trm.Do(ctx, func(ctx context.Context) error {
		acc, err := s.selectAccount(ctx, id, true)
		if err != nil {
			return err
		}
		if err := fn(acc); err != nil {
			return err
		}
		acc.ID = id
		acc.UpdatedAt = time.Now()
		query, args, err := s.sb.Update(accountsTable).
			SetMap(map[string]any{
				"balance":           acc.Balance,
				"wallet":            acc.Wallet,
				"free_credits":      acc.FreeCredits,
				"games_played":      acc.GamesPlayed,
				"lifetime_winnings": acc.LifetimeWinnings,
				"updated_at":        acc.UpdatedAt,
			}).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := s.conn(ctx).Exec(ctx, query, args...); err != nil {
			return err
		}
		out = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) selectAccount(ctx context.Context, id string, forUpdate bool) (*Account, error) {
	b := s.sb.Select(accountColumns...).From(accountsTable).Where(sq.Eq{"id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	var acc Account
	err = s.conn(ctx).QueryRow(ctx, query, args...).Scan(
		&acc.ID, &acc.Balance, &acc.Wallet, &acc.FreeCredits, &acc.GamesPlayed, &acc.LifetimeWinnings, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &acc, nil
}
