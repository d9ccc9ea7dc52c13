package store

import (
	"context"
	"testing"

	"github.com/gaayatricouture/couture/internal/db"
)

func TestGetOrCreateSecret_GeneratesAndPersists(t *testing.T) {
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		t.Fatal(err)
	}

	s := NewSQLStore(database)
	ctx := context.Background()

	secret1, err := s.GetOrCreateSecret(ctx, SettingJWTSecret)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	secret2, err := s.GetOrCreateSecret(ctx, SettingJWTSecret)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}

	other, err := s.GetOrCreateSecret(ctx, SettingSessionKey)
	if err != nil {
		t.Fatal(err)
	}
	if other == secret1 {
		t.Fatal("expected distinct secrets per key")
	}
}
