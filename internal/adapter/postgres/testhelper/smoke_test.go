package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	item := SeedItem(t, pool)

	// Verify the item exists in the DB via SELECT.
	var title string
	err := pool.QueryRow(
		context.Background(),
		`SELECT title FROM items WHERE id = $1`,
		item.ID,
	).Scan(&title)
	if err != nil {
		t.Fatalf("expected item in DB, got error: %v", err)
	}

	if title != item.Title {
		t.Fatalf("expected title %q, got %q", item.Title, title)
	}
}
