package sql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct {
	code int
	msg  string
}

func (e *codedError) Error() string { return e.msg }
func (e *codedError) Code() int     { return e.code }

func TestIsUniqueConstraintErrorByCode(t *testing.T) {
	err := &codedError{code: sqliteConstraintUnique, msg: "sqlite: constraint failed"}
	assert.True(t, IsUniqueConstraintError(err))
	assert.True(t, IsConstraintError(err))
}

func TestIsUniqueConstraintErrorByMessage(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: note.title")
	assert.True(t, IsUniqueConstraintError(err))
}

func TestIsForeignKeyConstraintError(t *testing.T) {
	err := errors.New("FOREIGN KEY constraint failed")
	assert.True(t, IsForeignKeyConstraintError(err))
	assert.False(t, IsUniqueConstraintError(err))
}

func TestIsCheckConstraintError(t *testing.T) {
	err := errors.New("CHECK constraint failed: age")
	assert.True(t, IsCheckConstraintError(err))
}

func TestIsConstraintErrorWrappedErr(t *testing.T) {
	inner := &codedError{code: sqliteConstraintForeignKey, msg: "fk"}
	wrapped := errors.Join(errors.New("exec: insert"), inner)
	assert.True(t, IsForeignKeyConstraintError(wrapped))
}

func TestIsConstraintErrorUnrelated(t *testing.T) {
	err := errors.New("no such table: note")
	assert.False(t, IsConstraintError(err))
}

func TestIsConstraintErrorNil(t *testing.T) {
	assert.False(t, IsConstraintError(nil))
}
