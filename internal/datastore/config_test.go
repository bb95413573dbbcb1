package datastore

import (
	"context"
	"testing"

	"prizewheel/internal/models"
)

func TestConfigInsertAndLookup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := InsertConfig(ctx, db, models.Config{Key: "SPIN_COST_BASIC_CENTS", Value: "1500"}); err != nil {
		t.Fatalf("insert config: %v", err)
	}

	config, err := GetConfigByKey(ctx, db, "SPIN_COST_BASIC_CENTS")
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if config.Value != "1500" {
		t.Fatalf("got %q, want 1500", config.Value)
	}

	if _, err := GetConfigByKey(ctx, db, "MISSING_KEY"); err == nil {
		t.Fatal("expected error for missing key")
	}
}
