package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"validation", NewValidationError("royalty_percentage", 101.0, "must be within [0, 100]"), ErrInvalidInput},
		{"duplicate", &DuplicateNameError{Name: "Madonna"}, ErrAlreadyExists},
		{"not found", NewNotFoundError("artist", "Prince"), ErrNotFound},
		{"parse", &ParseError{Table: "authors", Line: 3, Field: "author_id", Err: New("bad")}, ErrParse},
		{"persistence", NewPersistenceError("write", "data/x.csv", fs.ErrPermission), ErrPersistence},
		{"snapshot", &SnapshotError{Path: "data/history", Err: fs.ErrPermission}, ErrSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestWrappingErrorsUnwrap(t *testing.T) {
	err := NewPersistenceError("rename", "data/authors_table.csv", fs.ErrPermission)
	assert.ErrorIs(t, err, fs.ErrPermission)

	var pe *PersistenceError
	assert.True(t, As(Join(New("outer"), err), &pe))
	assert.Equal(t, "rename", pe.Op)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `artist "Madonna" already exists`, (&DuplicateNameError{Name: "Madonna"}).Error())
	assert.Equal(t, `artist "Prince" not found`, NewNotFoundError("artist", "Prince").Error())
	assert.Equal(t, "validation failed: empty", NewValidationError("", nil, "empty").Error())
	assert.Equal(t, "authors: field x: bad", (&ParseError{Table: "authors", Field: "x", Err: New("bad")}).Error())
}
