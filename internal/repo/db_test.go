package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tbourn/go-slack-actions/internal/domain"
)

func TestOpenSQLite_CreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	// The migrated schema must support the upsert path end to end.
	count, err := RecordOccurrence(context.Background(), db, "poke", "U1", "U2")
	if err != nil {
		t.Fatalf("RecordOccurrence: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	if !db.Migrator().HasTable(&domain.ActionRecord{}) {
		t.Fatalf("actions table missing after migration")
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "ledger.db")
	if _, err := OpenSQLite(path); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}

func TestEnableTracing(t *testing.T) {
	db := newLedgerDB(t)
	if err := EnableTracing(db); err != nil {
		t.Fatalf("EnableTracing: %v", err)
	}
	// Queries must keep working with the plugin installed.
	if _, err := RecordOccurrence(context.Background(), db, "hug", "U1", "U2"); err != nil {
		t.Fatalf("RecordOccurrence with tracing: %v", err)
	}
}
