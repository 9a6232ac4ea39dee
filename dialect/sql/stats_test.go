package sql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/syssam/gom/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsDriverCountsQueriesAndExecs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.SQLite, db)
	statsDrv := NewStatsDriver(drv)

	mock.ExpectQuery("SELECT id FROM items").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	rows := &Rows{}
	require.NoError(t, statsDrv.Query(context.Background(), "SELECT id FROM items", []any{}, rows))
	require.NoError(t, rows.Close())

	mock.ExpectExec("INSERT INTO items").WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, statsDrv.Exec(context.Background(), "INSERT INTO items (name) VALUES ('x')", []any{}, nil))

	snap := statsDrv.QueryStats().Stats()
	assert.EqualValues(t, 1, snap.TotalQueries)
	assert.EqualValues(t, 1, snap.TotalExecs)
	assert.EqualValues(t, 0, snap.Errors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsDriverCountsErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.SQLite, db)
	statsDrv := NewStatsDriver(drv)

	mock.ExpectExec("DELETE FROM items").WillReturnError(errors.New("boom"))
	err = statsDrv.Exec(context.Background(), "DELETE FROM items", []any{}, nil)
	require.Error(t, err)

	snap := statsDrv.QueryStats().Stats()
	assert.EqualValues(t, 1, snap.Errors)
}

func TestStatsDriverSlowQueryHookFires(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.SQLite, db)

	var hookCalled bool
	statsDrv := NewStatsDriver(drv,
		WithSlowThreshold(0),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			hookCalled = true
			assert.Contains(t, query, "SELECT")
		}),
	)

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	rows := &Rows{}
	require.NoError(t, statsDrv.Query(context.Background(), "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())

	assert.True(t, hookCalled)
	snap := statsDrv.QueryStats().Stats()
	assert.EqualValues(t, 1, snap.SlowQueries)
}

func TestStatsDriverResetClearsCounters(t *testing.T) {
	stats := &QueryStats{}
	stats.TotalQueries.Add(3)
	stats.Errors.Add(1)
	stats.Reset()
	snap := stats.Stats()
	assert.Zero(t, snap.TotalQueries)
	assert.Zero(t, snap.Errors)
}

func TestStatsDriverTxRecordsStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.SQLite, db)
	statsDrv := NewStatsDriver(drv)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO items").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := statsDrv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "INSERT INTO items (name) VALUES ('x')", []any{}, nil))
	require.NoError(t, tx.Commit())

	snap := statsDrv.QueryStats().Stats()
	assert.EqualValues(t, 1, snap.TotalExecs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebugDriverLogsStatements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.SQLite, db)

	var logged []string
	debugDrv := NewDebugDriver(drv, DebugWithLog(func(_ context.Context, v ...any) {
		for _, a := range v {
			if s, ok := a.(string); ok {
				logged = append(logged, s)
			}
		}
	}))

	mock.ExpectExec("INSERT INTO items").WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, debugDrv.Exec(context.Background(), "INSERT INTO items (name) VALUES ('x')", []any{}, nil))

	require.NotEmpty(t, logged)
	assert.Contains(t, logged[len(logged)-1], "INSERT INTO items")
	require.NoError(t, mock.ExpectationsWereMet())
}
