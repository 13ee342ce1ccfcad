package store

import (
	"context"
	_ "embed"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/000001_init.up.sql
var initSchema string

const (
	accountsTable = "accounts"
	sessionsTable = "game_sessions"
	ledgerTable   = "ledger_entries"
)

// PostgresStore keeps accounts, sessions and the ledger journal in Postgres.
// Per-key atomicity comes from SELECT ... FOR UPDATE inside a transaction
// owned by the transaction manager; WithinTx joins all of them into one.
type PostgresStore struct {
	Pool   *pgxpool.Pool
	trm    *manager.Manager
	getter *trmpgx.CtxGetter
	sb     sq.StatementBuilderType
}

func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	m, err := manager.New(trmpgx.NewDefaultFactory(pool))
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{
		Pool:   pool,
		trm:    m,
		getter: trmpgx.DefaultCtxGetter,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

func (s *PostgresStore) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Pool.Ping(ctx)
}

// Migrate applies the embedded schema. Statements are idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, initSchema)
	return err
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.trm.Do(ctx, fn)
}

func (s *PostgresStore) conn(ctx context.Context) trmpgx.Tr {
	return s.getter.DefaultTrOrDB(ctx, s.Pool)
}
