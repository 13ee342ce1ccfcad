package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var sessionColumns = []string{
	"id", "account_id", "stake", "mine_count", "grid_size", "increment", "multiplier", "winnings",
	"safe_clicks", "mines", "revealed", "status", "is_free", "created_at", "ended_at",
}

func (s *PostgresStore) CreateSession(ctx context.Context, sess Session) error {
	query, args, err := s.sb.Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(
			sess.ID, sess.AccountID, sess.Stake, sess.MineCount, sess.GridSize,
			sess.Increment.String(), sess.Multiplier.String(), sess.Winnings, sess.SafeClicks,
			sess.Mines, sess.Revealed, sess.Status, sess.Free, sess.CreatedAt, timeParam(sess.EndedAt),
		).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.conn(ctx).Exec(ctx, query, args...); err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (s *PostgresStore) GetSession(ctx context.Context, id string) (*Session, error) {
	return s.selectSession(ctx, id, false)
}

func (s *PostgresStore) UpdateSession(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	var out *Session
	err := s.trm.Do(ctx, func(ctx context.Context) error {
		sess, err := s.selectSession(ctx, id, true)
		if err != nil {
			return err
		}
		if err := fn(sess); err != nil {
			return err
		}
		query, args, err := s.sb.Update(sessionsTable).
			SetMap(map[string]any{
				"multiplier":  sess.Multiplier.String(),
				"winnings":    sess.Winnings,
				"safe_clicks": sess.SafeClicks,
				"revealed":    sess.Revealed,
				"status":      sess.Status,
				"ended_at":    timeParam(sess.EndedAt),
			}).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := s.conn(ctx).Exec(ctx, query, args...); err != nil {
			return err
		}
		out = sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) ListSessionsByAccount(ctx context.Context, accountID string, limit, offset int) ([]Session, error) {
	limit, offset = clampPage(limit, offset)
	query, args, err := s.sb.Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("id DESC").
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

	out := make([]Session, 0, limit)
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sess)
	}
	return out, rows.Err()
}

func (s *PostgresStore) selectSession(ctx context.Context, id string, forUpdate bool) (*Session, error) {
	b := s.sb.Select(sessionColumns...).From(sessionsTable).Where(sq.Eq{"id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	sess, err := scanSession(s.conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return sess, nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var (
		sess            Session
		increment, mult string
		endedAt         pgtype.Timestamptz
	)
	if err := row.Scan(
		&sess.ID, &sess.AccountID, &sess.Stake, &sess.MineCount, &sess.GridSize, &increment, &mult, &sess.Winnings,
		&sess.SafeClicks, &sess.Mines, &sess.Revealed, &sess.Status, &sess.Free, &sess.CreatedAt, &endedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if sess.Increment, err = decimal.NewFromString(increment); err != nil {
		return nil, fmt.Errorf("session %s increment: %w", sess.ID, err)
	}
	if sess.Multiplier, err = decimal.NewFromString(mult); err != nil {
		return nil, fmt.Errorf("session %s multiplier: %w", sess.ID, err)
	}
	sess.EndedAt = timePtrVal(endedAt)
	return &sess, nil
}
