package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/highlightagent/highlight-agent/internal/store"
	"github.com/highlightagent/highlight-agent/internal/store/storetest"
)

// Requires a reachable Postgres; set ALERTS_TEST_POSTGRES_DSN to run.
func TestPostgresStoreCompliance(t *testing.T) {
	dsn := os.Getenv("ALERTS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ALERTS_TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		db, err := Open(dsn)
		if err != nil {
			t.Fatalf("open postgres: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })
		if err := EnsureSchema(context.Background(), db); err != nil {
			t.Fatalf("ensure schema: %v", err)
		}
		return NewWithDB(db)
	})
}
