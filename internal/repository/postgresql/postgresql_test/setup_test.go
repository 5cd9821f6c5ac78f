package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/leavehub/leave-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBErr  error
	testDBOnce sync.Once
)

// Child tables first so TRUNCATE order never matters to CASCADE.
var truncateTables = []string{
	"wellness_event_registrations",
	"wellness_events",
	"wellness_articles",
	"notifications",
	"notices",
	"leaves",
	"balance_requests",
	"balances",
	"users",
}

// newTestDB connects to TEST_DATABASE_URL, applies the schema once and
// empties every table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}

	ctx := context.Background()
	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 5, MinConns: 1})
		if testDBErr != nil {
			return
		}
		testDBErr = database.Migrate(ctx, testDB)
	})
	require.NoError(t, testDBErr)

	require.NoError(t, truncateAll(ctx, testDB))
	return testDB
}

func truncateAll(ctx context.Context, db *database.DB) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range truncateTables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}
