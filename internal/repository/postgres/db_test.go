package postgres

import (
	"testing"

	"github.com/net2mulu/signature-gym/internal/testutil"
	"github.com/net2mulu/signature-gym/migrations"
)

func TestDB_Rebind(t *testing.T) {
	tests := []struct {
		driver string
		query  string
		want   string
	}{
		{"sqlite", "SELECT * FROM users WHERE id = ? AND email = ?", "SELECT * FROM users WHERE id = ? AND email = ?"},
		{"postgres", "SELECT * FROM users WHERE id = ? AND email = ?", "SELECT * FROM users WHERE id = $1 AND email = $2"},
		{"postgres", "SELECT COUNT(*) FROM users", "SELECT COUNT(*) FROM users"},
	}

	for _, tt := range tests {
		t.Run(tt.driver+"/"+tt.query, func(t *testing.T) {
			db := Wrap(nil, tt.driver)
			if got := db.Rebind(tt.query); got != tt.want {
				t.Errorf("Rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	raw := testutil.NewTestDB(t)
	defer testutil.CleanupDB(raw)
	db := Wrap(raw, "sqlite")

	// the schema from testutil uses IF NOT EXISTS so the first run re-applies cleanly
	schema, err := migrations.GetFS("sqlite")
	if err != nil {
		t.Fatalf("GetFS() error = %v", err)
	}

	first, err := RunMigrations(db, schema)
	if err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	if len(first) == 0 {
		t.Fatal("RunMigrations() applied nothing on first run")
	}

	second, err := RunMigrations(db, schema)
	if err != nil {
		t.Fatalf("RunMigrations() second error = %v", err)
	}
	if len(second) != 0 {
		t.Errorf("RunMigrations() re-applied %v", second)
	}
}
