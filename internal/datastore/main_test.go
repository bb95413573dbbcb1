package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema,
// so the SQL guards run against a real engine instead of being read-checked.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for _, create := range []func(context.Context, *bun.DB) error{
		CreateTablePrize,
		CreateTablePrizeContent,
		CreateTableWallet,
		CreateTableWalletTransaction,
		CreateTableSpin,
		CreateTableSpinToken,
		CreateTableConfig,
	} {
		if err := create(ctx, db); err != nil {
			t.Fatalf("create table: %v", err)
		}
	}

	return db
}
