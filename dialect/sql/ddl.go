package sql

import (
	"fmt"
	"strings"

	"github.com/syssam/gom/codec"
	"github.com/syssam/gom/schema"
)

func storageOf(p *schema.Property) (codec.Storage, error) {
	if p.Transform != nil {
		return codec.StorageBlob, nil
	}
	return p.Kind.Storage()
}

func columnDef(p *schema.Property) (string, error) {
	storage, err := storageOf(p)
	if err != nil {
		return "", fmt.Errorf("dialect/sql: column %q: %w", p.Name, err)
	}
	def := fmt.Sprintf("'%s' %s", p.Column, storage)
	if p.Reference != nil {
		def += fmt.Sprintf(" REFERENCES '%s'('%s')", p.Reference.Table, p.Reference.Column)
	}
	if p.Unique {
		def += " UNIQUE"
	}
	if p.NotNull {
		def += " NOT NULL"
	}
	return def, nil
}

// CreateTable builds the version-1 CREATE TABLE command for e (spec.md
// §4.4.1).
func CreateTable(e *schema.Entity) (*Command, error) {
	pk := e.PrimaryKey
	pkStorage, err := storageOf(pk)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: primary key %q: %w", pk.Name, err)
	}
	pkDef := fmt.Sprintf("'%s' %s PRIMARY KEY", pk.Column, pkStorage)
	if pk.AutoGenerated {
		pkDef += " AUTOINCREMENT"
	}

	cols := []string{pkDef}
	for _, p := range e.Properties {
		if p.PrimaryKey || p.VersionIntroduced != 1 {
			continue
		}
		def, err := columnDef(p)
		if err != nil {
			return nil, err
		}
		cols = append(cols, def)
	}

	sqlText := fmt.Sprintf("CREATE TABLE IF NOT EXISTS '%s' (\n  %s\n)", e.Table, strings.Join(cols, ",\n  "))
	return NewCommand(sqlText, nil), nil
}

// AlterTable builds one ALTER TABLE ADD COLUMN command per property
// introduced at exactly version v (spec.md §4.4.1). Returns nil if no
// property was introduced at v.
func AlterTable(e *schema.Entity, v int) ([]*Command, error) {
	var cmds []*Command
	for _, p := range e.PropertiesAtVersion(v) {
		def, err := columnDef(p)
		if err != nil {
			return nil, err
		}
		sqlText := fmt.Sprintf("ALTER TABLE '%s' ADD COLUMN %s", e.Table, def)
		cmds = append(cmds, NewCommand(sqlText, nil))
	}
	return cmds, nil
}
