package store

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Store is the storage collaborator of the game engine.
//
// UpdateAccount and UpdateSession are atomic read-modify-write operations
// scoped to one key: fn receives a private copy, and the record is only
// replaced when fn returns nil. Distinct keys never contend.
//
// WithinTx groups every mutation made through the context passed to fn into
// one unit that is rolled back when fn fails. Nested calls join the outer unit.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error

	CreateAccount(ctx context.Context, acc Account) error
	GetAccount(ctx context.Context, id string) (*Account, error)
	UpdateAccount(ctx context.Context, id string, fn func(*Account) error) (*Account, error)

	CreateSession(ctx context.Context, sess Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	UpdateSession(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	ListSessionsByAccount(ctx context.Context, accountID string, limit, offset int) ([]Session, error)

	AppendLedgerEntry(ctx context.Context, e LedgerEntry) error
	ListLedgerEntries(ctx context.Context, f LedgerFilter, limit, offset int) ([]LedgerEntry, error)

	Ping(ctx context.Context) error
	Close()
}

// Open builds the store selected by driver.
func Open(ctx context.Context, driver, dsn string, migrate bool) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverPostgres:
		st, err := NewPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := st.Migrate(ctx); err != nil {
				st.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
