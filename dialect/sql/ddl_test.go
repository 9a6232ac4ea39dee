package sql_test

import (
	"testing"

	"github.com/syssam/gom/dialect/sql"
	"github.com/syssam/gom/schema"
	"github.com/syssam/gom/schema/field"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTable(t *testing.T) {
	reg := schema.NewRegistry()
	item, err := reg.Register("Item", "items", "",
		field.Int64("id").Primary().AutoGenerated().Descriptor(),
		field.Text("first_name").Descriptor(),
		field.Text("surname").Descriptor(),
	)
	require.NoError(t, err)

	cmd, err := sql.CreateTable(item)
	require.NoError(t, err)
	assert.Contains(t, cmd.SQL, "CREATE TABLE IF NOT EXISTS 'items'")
	assert.Contains(t, cmd.SQL, "'id' INTEGER PRIMARY KEY AUTOINCREMENT")
	assert.Contains(t, cmd.SQL, "'first_name' TEXT")
	assert.Contains(t, cmd.SQL, "'surname' TEXT")
	assert.Empty(t, cmd.Binds)
}

func TestCreateTableWithReferenceAndConstraints(t *testing.T) {
	reg := schema.NewRegistry()
	parent, err := reg.Register("Series", "series", "",
		field.Text("id").Primary().Descriptor(),
	)
	require.NoError(t, err)

	bookmark, err := reg.Register("Bookmark", "bookmarks", "",
		field.Text("id").Primary().Descriptor(),
		field.Text("series_id").References(parent.Table, parent.PrimaryKey.Column).NotNull().Descriptor(),
		field.Text("url").Unique().Descriptor(),
	)
	require.NoError(t, err)

	cmd, err := sql.CreateTable(bookmark)
	require.NoError(t, err)
	assert.Contains(t, cmd.SQL, "REFERENCES 'series'('id')")
	assert.Contains(t, cmd.SQL, "NOT NULL")
	assert.Contains(t, cmd.SQL, "'url' TEXT UNIQUE")
}

func TestAlterTableAddsColumnsIntroducedAtVersion(t *testing.T) {
	reg := schema.NewRegistry()
	bookmark, err := reg.Register("Bookmark", "bookmarks", "",
		field.Text("id").Primary().Descriptor(),
		field.Text("url").Descriptor(),
		field.Text("thumbnail_url").Version(2).Descriptor(),
	)
	require.NoError(t, err)

	cmds, err := sql.AlterTable(bookmark, 2)
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "ALTER TABLE 'bookmarks' ADD COLUMN 'thumbnail_url' TEXT", cmds[0].SQL)
}

func TestAlterTableNoOpWhenNothingIntroducedAtVersion(t *testing.T) {
	reg := schema.NewRegistry()
	bookmark, err := reg.Register("Bookmark", "bookmarks", "",
		field.Text("id").Primary().Descriptor(),
		field.Text("url").Descriptor(),
	)
	require.NoError(t, err)

	cmds, err := sql.AlterTable(bookmark, 3)
	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestCreateTableTransformOverridesStorageToBlob(t *testing.T) {
	reg := schema.NewRegistry()
	toBlob := func(any) ([]byte, error) { return nil, nil }
	fromBlob := func([]byte) (any, error) { return nil, nil }

	item, err := reg.Register("Config", "configs", "",
		field.Int64("id").Primary().AutoGenerated().Descriptor(),
		field.Int32("flags").Transform(toBlob, fromBlob).Descriptor(),
	)
	require.NoError(t, err)

	cmd, err := sql.CreateTable(item)
	require.NoError(t, err)
	assert.Contains(t, cmd.SQL, "'flags' BLOB")
}
