// Package pgconv converts between domain values and the pgtype wrappers sqlc
// generates for nullable columns.
package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// IsNoRows matches both pgx and database/sql "no rows" errors.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

func nullable[T any](v T, valid bool) *T {
	if !valid {
		return nil
	}
	return &v
}

// to Postgres

func UUIDToPgtype(id uuid.UUID) pgtype.UUID { return pgtype.UUID{Bytes: id, Valid: true} }

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return UUIDToPgtype(*id)
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz { return pgtype.Timestamptz{Time: t, Valid: true} }

func TimePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return TimeToPgtype(*t)
}

func StringToPgtype(s string) pgtype.Text { return pgtype.Text{String: s, Valid: true} }

func IntPtrToPgtype(v *int) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	// #nosec G115 -- callers validate the range
	return pgtype.Int4{Int32: int32(*v), Valid: true}
}

// from Postgres

// TimeFromPgtype is for NOT NULL columns; a NULL yields the zero time.
func TimeFromPgtype(t pgtype.Timestamptz) time.Time { return t.Time }

// StringFromPgtype maps NULL to "".
func StringFromPgtype(t pgtype.Text) string { return t.String }

func UUIDPtrFromPgtype(u pgtype.UUID) *uuid.UUID {
	return nullable(uuid.UUID(u.Bytes), u.Valid)
}

func NullableTime(t pgtype.Timestamptz) *time.Time { return nullable(t.Time, t.Valid) }

func NullableInt(i pgtype.Int4) *int { return nullable(int(i.Int32), i.Valid) }
