//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"booking-platform/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind []infra.RepositoryErrorKind
		want infra.RepositoryErrorKind
	}{
		{name: "no rows becomes not found", err: pgx.ErrNoRows, want: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "exclusion violation", err: &pgconn.PgError{Code: "23P01"}, want: infra.KindConflict},
		{name: "other errors are db failures", err: errors.New("boom"), want: infra.KindDBFailure},
		{name: "explicit kind wins", err: errors.New("boom"), kind: []infra.RepositoryErrorKind{infra.KindNotFound}, want: infra.KindNotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := infra.WrapRepoErr("op failed", c.err, c.kind...)

			assert.True(t, infra.IsKind(err, c.want))
			assert.ErrorIs(t, err, c.err)
			assert.Contains(t, err.Error(), "op failed")
		})
	}
}

func TestWrapRepoErrKeepsConstraint(t *testing.T) {
	err := infra.WrapRepoErr("insert reservation", &pgconn.PgError{Code: "23P01", ConstraintName: "reservations_no_overlap"})

	var re *infra.RepositoryError
	assert.ErrorAs(t, err, &re)
	assert.Equal(t, infra.KindConflict, re.Kind)
	assert.Equal(t, "reservations_no_overlap", re.Constraint)
	assert.False(t, infra.IsKind(errors.New("plain"), infra.KindDBFailure))
}
