package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/migrations"
	"github.com/pkordes/trip-planner/testutil"
)

// TestMigrations applies the embedded migrations with migrations.Up, checks
// the trip_documents schema, then rolls everything back. Skipped without
// TEST_DATABASE_URL.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	// repo's TestMain may already have migrated the shared database.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	versions, err := migrations.Up(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, versions)

	// A second run is a no-op.
	versions, err = migrations.Up(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, versions)

	assert.True(t, tableExists(t, db, "trip_documents"))
	assert.ElementsMatch(t,
		[]string{"user_id", "trip_id", "position", "name", "document", "updated_at"},
		columns(t, db, "trip_documents"),
	)

	t.Run("position is unique per user", func(t *testing.T) {
		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback() }()

		const ins = `INSERT INTO trip_documents (user_id, trip_id, position, name, document)
			VALUES ($1, gen_random_uuid(), $2, 'Trip', '{}'::jsonb)`
		_, err = tx.ExecContext(ctx, ins, "u1", 0)
		require.NoError(t, err)
		_, err = tx.ExecContext(ctx, ins, "u2", 0)
		require.NoError(t, err, "another user may reuse the position")
		_, err = tx.ExecContext(ctx, ins, "u1", 0)
		assert.Error(t, err, "duplicate position for one user must be rejected")
	})

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	assert.False(t, tableExists(t, db, "trip_documents"))
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists))
	return exists
}

func columns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.QueryContext(context.Background(), `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1`, table)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		out = append(out, name)
	}
	require.NoError(t, rows.Err())
	return out
}
