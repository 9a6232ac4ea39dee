package adapter_test

import (
	"sync"
	"testing"

	"github.com/syssam/gom/adapter"
	"github.com/syssam/gom/dialect/sql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCloseLifecycle(t *testing.T) {
	a := adapter.New(":memory:")
	require.NoError(t, a.Open())
	assert.ErrorIs(t, a.Open(), adapter.ErrAlreadyOpen)
	require.NoError(t, a.Close())
	assert.ErrorIs(t, a.Close(), adapter.ErrNotOpen)
}

func TestWriteBeforeOpenIsRejected(t *testing.T) {
	a := adapter.New(":memory:")
	err := a.Write(func(*sql.Driver) error { return nil })
	assert.ErrorIs(t, err, adapter.ErrClosed)
}

func TestWriteRunsOnWorkerAndReturnsResult(t *testing.T) {
	a := adapter.New(":memory:")
	require.NoError(t, a.Open())
	defer a.Close()

	err := a.Write(func(drv *sql.Driver) error {
		_, execErr := drv.DB().Exec("CREATE TABLE items (id INTEGER PRIMARY KEY)")
		return execErr
	})
	require.NoError(t, err)

	err = a.Read(func(drv *sql.Driver) error {
		row := drv.DB().QueryRow("SELECT COUNT(*) FROM items")
		var n int
		return row.Scan(&n)
	})
	require.NoError(t, err)
}

func TestSubmissionsFromOneCallerRunInOrder(t *testing.T) {
	a := adapter.New(":memory:")
	require.NoError(t, a.Open())
	defer a.Close()

	require.NoError(t, a.Write(func(drv *sql.Driver) error {
		_, err := drv.DB().Exec("CREATE TABLE seq (n INTEGER)")
		return err
	}))

	for i := 0; i < 5; i++ {
		n := i
		require.NoError(t, a.Write(func(drv *sql.Driver) error {
			_, err := drv.DB().Exec("INSERT INTO seq VALUES (?)", n)
			return err
		}))
	}

	var got []int
	require.NoError(t, a.Read(func(drv *sql.Driver) error {
		rows, err := drv.DB().Query("SELECT n FROM seq ORDER BY rowid")
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var n int
			if err := rows.Scan(&n); err != nil {
				return err
			}
			got = append(got, n)
		}
		return rows.Err()
	}))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestCloseRejectsWorkSubmittedAfterward(t *testing.T) {
	a := adapter.New(":memory:")
	require.NoError(t, a.Open())
	require.NoError(t, a.Close())

	err := a.Write(func(*sql.Driver) error { return nil })
	assert.ErrorIs(t, err, adapter.ErrClosed)
}

func TestConcurrentWritersAreSerialized(t *testing.T) {
	a := adapter.New(":memory:")
	require.NoError(t, a.Open())
	defer a.Close()

	require.NoError(t, a.Write(func(drv *sql.Driver) error {
		_, err := drv.DB().Exec("CREATE TABLE counter (n INTEGER)")
		if err != nil {
			return err
		}
		_, err = drv.DB().Exec("INSERT INTO counter VALUES (0)")
		return err
	}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = a.Write(func(drv *sql.Driver) error {
				_, err := drv.DB().Exec("UPDATE counter SET n = n + 1")
				return err
			})
		}()
	}
	wg.Wait()

	var n int
	require.NoError(t, a.Read(func(drv *sql.Driver) error {
		return drv.DB().QueryRow("SELECT n FROM counter").Scan(&n)
	}))
	assert.Equal(t, 20, n)
}
