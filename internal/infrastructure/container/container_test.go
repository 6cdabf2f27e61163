package container

import (
	"context"
	"path/filepath"
	"testing"

	"coinmarker/internal/domain/model"
	"coinmarker/internal/infrastructure/config"
	"coinmarker/internal/infrastructure/storage"
)

func TestContainerWithoutStorageUsesMemory(t *testing.T) {
	c, err := New(&config.Config{})
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	defer c.Close()

	if _, ok := c.Journal().(*storage.Memory); !ok {
		t.Fatalf("expected in-memory journal, got %T", c.Journal())
	}
	if c.SQLiteRepo() != nil || c.RedisRepo() != nil || c.PostgresRepo() != nil {
		t.Errorf("expected no persistent backends")
	}
}

func TestContainerWithSQLite(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Enabled = true
	cfg.Storage.SQLite.Enabled = true
	cfg.Storage.SQLite.Path = filepath.Join(t.TempDir(), "journal.db")

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	defer c.Close()

	if c.SQLiteRepo() == nil {
		t.Fatalf("expected SQLiteRepo, got nil")
	}

	ctx := context.Background()
	if err := c.Journal().InsertLookup(ctx, &model.Lookup{Symbol: "BTC", Outcome: model.OutcomeResolved, Timestamp: 1}); err != nil {
		t.Fatalf("InsertLookup failed: %v", err)
	}
	got, err := c.SQLiteRepo().ListLookups(ctx, "BTC", 10)
	if err != nil {
		t.Fatalf("ListLookups failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 lookup, got %d", len(got))
	}
}

func TestContainerCloseIsIdempotent(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Enabled = true
	cfg.Storage.SQLite.Enabled = true
	cfg.Storage.SQLite.Path = filepath.Join(t.TempDir(), "journal.db")

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
