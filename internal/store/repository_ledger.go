package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
)

var ledgerColumns = []string{"id", "account_id", "type", "currency", "amount", "ref_type", "ref_id", "created_at"}

func (s *PostgresStore) AppendLedgerEntry(ctx context.Context, e LedgerEntry) error {
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	query, args, err := s.sb.Insert(ledgerTable).
		Columns(ledgerColumns...).
		Values(e.ID, e.AccountID, e.Type, e.Currency, e.Amount, e.RefType, e.RefID, e.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.conn(ctx).Exec(ctx, query, args...)
	return err
}

func (s *PostgresStore) ListLedgerEntries(ctx context.Context, f LedgerFilter, limit, offset int) ([]LedgerEntry, error) {
	limit, offset = clampPage(limit, offset)
	b := s.sb.Select(ledgerColumns...).From(ledgerTable)
	if f.AccountID != "" {
		b = b.Where(sq.Eq{"account_id": f.AccountID})
	}
	if f.RefID != "" {
		b = b.Where(sq.Eq{"ref_id": f.RefID})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"created_at": *f.To})
	}
	query, args, err := b.OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LedgerEntry, 0, limit)
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Type, &e.Currency, &e.Amount, &e.RefType, &e.RefID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
