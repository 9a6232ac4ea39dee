package sql_test

import (
	"testing"

	"github.com/syssam/gom/dialect/sql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortingCompile(t *testing.T) {
	reg := newTestRegistry(t)
	s := sql.By(
		sql.Desc("Episode", "season_number"),
		sql.Asc("Episode", "episode_number"),
	)
	got, err := s.ToSQL(reg, nil)
	require.NoError(t, err)
	assert.Equal(t, "'episodes'.'season_number' DESC, 'episodes'.'episode_number'", got)
}

func TestEmptySortingCompilesToEmptyString(t *testing.T) {
	reg := newTestRegistry(t)
	got, err := sql.Sorting(nil).ToSQL(reg, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSortingUnknownColumn(t *testing.T) {
	reg := newTestRegistry(t)
	_, err := sql.By(sql.Asc("Episode", "nonexistent")).ToSQL(reg, nil)
	require.Error(t, err)
}
