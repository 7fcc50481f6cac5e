package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/campushr/attendance-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBErr  error
	testDBOnce sync.Once
)

// testDatabase connects to the database named by TEST_DATABASE_URL.
// Tests are skipped when the variable is unset so the rest of the suite
// runs without infrastructure.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}

	testDBOnce.Do(func() {
		// Small pool; the suite runs sequentially.
		testDB, testDBErr = database.NewPostgreSQLDB(dsn, 4, 1)
	})
	require.NoError(t, testDBErr, "failed to connect to test database")
	return testDB
}

// cleanupTestData truncates the attendance tables between tests.
func cleanupTestData(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	for _, table := range []string{"attendance_records", "employees"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}
