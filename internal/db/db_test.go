package db

import "testing"

func TestEnsureSchemaIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}

	for _, table := range []string{"settings", "sessions"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	var index string
	err := database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_sessions_expires_at'`,
	).Scan(&index)
	if err != nil {
		t.Errorf("expiry index missing: %v", err)
	}
}
