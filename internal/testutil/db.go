package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pedidos_api/internal/db"
)

// InitTestDB opens a fresh migrated in-memory sqlite database for one test.
func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err, "failed to connect to in-memory db")
	require.NoError(t, db.Migrate(context.Background(), gdb), "failed to migrate tables")

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})

	return gdb
}
