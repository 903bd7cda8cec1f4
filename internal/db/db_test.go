package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hairstudio/salon/internal/db"
	"github.com/hairstudio/salon/internal/db/dbtest"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countWorks(t *testing.T, database *sqlx.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.Get(&n, `SELECT COUNT(*) FROM works`))
	return n
}

const insertWork = `INSERT INTO works (id, title, before_image, after_image, created_at)
	VALUES ('w1', 'Bob', 'a.jpg', 'b.jpg', CURRENT_TIMESTAMP)`

func TestWithTxCommits(t *testing.T) {
	database := dbtest.New(t)

	err := db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(insertWork)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countWorks(t, database))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	database := dbtest.New(t)
	boom := errors.New("boom")

	err := db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(insertWork)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countWorks(t, database))
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	database := dbtest.New(t)

	assert.Panics(t, func() {
		_ = db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
			_, err := tx.Exec(insertWork)
			require.NoError(t, err)
			panic("handler exploded")
		})
	})
	assert.Equal(t, 0, countWorks(t, database))
}

func TestMigrateDown(t *testing.T) {
	database := dbtest.New(t)

	require.NoError(t, db.MigrateDown(t.Context(), database.DB, "sqlite"))

	var n int
	err := database.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'works'`)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSqlitePath(t *testing.T) {
	assert.Equal(t, "./instance/database.db", db.SqlitePath("./instance/database.db?_pragma=foreign_keys(1)"))
	assert.Equal(t, "/tmp/x.db", db.SqlitePath("file:/tmp/x.db"))
}
