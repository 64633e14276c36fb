package sqlite

import (
	"context"
	"testing"

	"github.com/highlightagent/highlight-agent/internal/store"
	"github.com/highlightagent/highlight-agent/internal/store/storetest"
)

func TestSQLiteStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		db, err := Open(":memory:")
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })
		if err := EnsureSchema(context.Background(), db); err != nil {
			t.Fatalf("ensure schema: %v", err)
		}
		return NewWithDB(db)
	})
}
