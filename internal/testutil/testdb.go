package testutil

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mines-casino/internal/config"
	"mines-casino/internal/store"
)

var testSchemaNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// OpenTestStore opens a Postgres store in a throwaway schema. The test is
// skipped when TEST_POSTGRES_DSN is not set.
func OpenTestStore(t *testing.T) (*store.PostgresStore, func()) {
	t.Helper()
	cfg, err := config.LoadTest()
	if err != nil {
		t.Skipf("skip test db: %v", err)
	}
	ctx := context.Background()
	dsn := cfg.TestPostgresDSN
	schema := fmt.Sprintf("mines_test_%d", time.Now().UnixNano())

	if err := execSchemaDDL(ctx, dsn, "CREATE SCHEMA %s", schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	st, err := store.NewPostgres(ctx, withSearchPath(dsn, schema))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		t.Fatalf("migrate: %v", err)
	}

	cleanup := func() {
		st.Close()
		_ = execSchemaDDL(context.Background(), dsn, "DROP SCHEMA %s CASCADE", schema)
	}
	return st, cleanup
}

// Stores runs fn against the in-memory store and, when TEST_POSTGRES_DSN is
// set, against Postgres as well.
func Stores(t *testing.T, fn func(t *testing.T, st store.Store)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) {
		fn(t, store.NewMemory())
	})
	t.Run("postgres", func(t *testing.T) {
		st, cleanup := OpenTestStore(t)
		defer cleanup()
		fn(t, st)
	})
}

func execSchemaDDL(ctx context.Context, dsn, format, schema string) error {
	if !testSchemaNamePattern.MatchString(schema) {
		return fmt.Errorf("schema %q does not match required pattern", schema)
	}
	base, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer base.Close()
	_, err = base.Exec(ctx, fmt.Sprintf(format, pgx.Identifier{schema}.Sanitize()))
	return err
}

func withSearchPath(dsn, schema string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "search_path=" + url.QueryEscape(schema)
}
