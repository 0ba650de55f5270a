//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"booking-platform/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

var errBusy = errs.Define(errs.ErrConflict, errs.CodeResourceBusy, "resource busy")

func TestDefine(t *testing.T) {
	wrapped := errs.Wrap(errBusy, "acquire lock")

	assert.ErrorIs(t, wrapped, errBusy)
	assert.ErrorIs(t, wrapped, errs.ErrConflict)
	assert.NotErrorIs(t, wrapped, errs.ErrNotFound)
	assert.Equal(t, errs.CodeResourceBusy, errs.CodeOf(wrapped))
	assert.True(t, errs.IsOperational(wrapped))
}

func TestWithCause(t *testing.T) {
	cause := errors.New("redis timeout")
	err := errs.WithCause(errBusy, cause)

	assert.ErrorIs(t, err, errBusy)
	assert.Equal(t, errs.CodeResourceBusy, errs.CodeOf(err))
	assert.Contains(t, errs.ExtractStackLines(err, 0)[0], "resource busy")
}

func TestCodeOfFallsBackToCategory(t *testing.T) {
	assert.Equal(t, errs.CodeValidation, errs.CodeOf(errs.Invalid(errs.New("bad input"))))
	assert.Equal(t, errs.CodeInternal, errs.CodeOf(errors.New("boom")))
	assert.Equal(t, errs.Code(""), errs.CodeOf(nil))
	assert.False(t, errs.IsOperational(errors.New("boom")))
}

func TestMark(t *testing.T) {
	sentinel := errors.New("skipped")
	assert.Same(t, sentinel, errs.Mark(nil, sentinel))
	assert.True(t, errs.Is(errs.Mark(errs.New("no recipient"), sentinel), sentinel))
	assert.Nil(t, errs.Wrap(nil, "noop"))
}

func TestMarkedCategory(t *testing.T) {
	err := errs.Wrap(errs.Invalid(errs.New("bad hours")), "create business")

	assert.Equal(t, errs.CodeValidation, errs.CodeOf(err))
	assert.True(t, errs.IsOperational(err))
	assert.True(t, errs.Is(err, errs.ErrValidation))
	assert.False(t, errs.Is(err, errs.ErrConflict))
}
