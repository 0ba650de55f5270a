package infra

import (
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConflict           RepositoryErrorKind = "CONFLICT"
)

// sqlstateKinds maps the integrity-constraint SQLSTATEs callers react to.
var sqlstateKinds = map[string]RepositoryErrorKind{
	"23505": KindDuplicateKey,
	"23503": KindForeignKeyViolated,
	"23P01": KindConflict,
}

// RepositoryError tags a storage failure with a kind the use cases can branch on.
// Constraint is set when postgres reported which constraint fired.
type RepositoryError struct {
	Kind       RepositoryErrorKind
	Constraint string
	op         string
	cause      error
}

func (e *RepositoryError) Error() string {
	if e.cause == nil {
		return string(e.Kind) + ": " + e.op
	}
	return string(e.Kind) + ": " + e.cause.Error()
}

func (e *RepositoryError) Unwrap() error { return e.cause }

// WrapRepoErr tags err with a kind classified from the pgx error. An explicit
// kind overrides the classification.
func WrapRepoErr(op string, err error, kind ...RepositoryErrorKind) error {
	re := &RepositoryError{Kind: KindDBFailure, op: op}
	if err != nil {
		re.cause = errs.Wrap(err, op)
		re.Kind, re.Constraint = classify(err)
	}
	if len(kind) > 0 {
		re.Kind = kind[0]
	}
	return re
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var re *RepositoryError
	return errs.As(err, &re) && re.Kind == kind
}

func classify(err error) (RepositoryErrorKind, string) {
	if pgconv.IsNoRows(err) {
		return KindNotFound, ""
	}
	var pgErr *pgconn.PgError
	if !errs.As(err, &pgErr) {
		return KindDBFailure, ""
	}
	if k, ok := sqlstateKinds[pgErr.Code]; ok {
		return k, pgErr.ConstraintName
	}
	return KindDBFailure, pgErr.ConstraintName
}
