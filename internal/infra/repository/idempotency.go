package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"booking-platform/internal/infra"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/pgconv"
	"booking-platform/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyQueries interface {
	GetIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.GetIdempotencyKeyParams) (sqlc.IdempotencyKeys, error)
	TryInsertIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.TryInsertIdempotencyKeyParams) (int64, error)
	ClaimExpiredIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimExpiredIdempotencyKeyParams) (int64, error)
	UpdateIdempotencyKeyCompleted(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateIdempotencyKeyCompletedParams) error
	DeleteProcessingIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteProcessingIdempotencyKeyParams) error
	DeleteExpiredIdempotencyKeys(ctx context.Context, db sqlc.DBTX) (int64, error)
}

// IdempotencyRepository stores one row per (key, user). Every method is a
// single statement, so claims are race-free without an explicit lock.
type IdempotencyRepository struct {
	queries IdempotencyQueries
}

func NewIdempotencyRepository(queries IdempotencyQueries) *IdempotencyRepository {
	return &IdempotencyRepository{queries: queries}
}

// Claim inserts a processing row and reports whether this call created it.
func (r *IdempotencyRepository) Claim(ctx context.Context, tx sqlc.DBTX, c shared.IdempotencyClaim) (bool, error) {
	n, err := r.queries.TryInsertIdempotencyKey(ctx, tx, sqlc.TryInsertIdempotencyKeyParams{
		Key:         c.Key,
		UserID:      c.UserID,
		Endpoint:    c.Endpoint,
		RequestHash: c.RequestHash,
		ExpiresAt:   pgconv.TimeToPgtype(c.ExpiresAt),
	})
	if err != nil {
		return false, infra.WrapRepoErr("claim idempotency key", err)
	}
	return n == 1, nil
}

// Reclaim takes over a row whose TTL has passed, whatever its status.
func (r *IdempotencyRepository) Reclaim(ctx context.Context, tx sqlc.DBTX, c shared.IdempotencyClaim) (bool, error) {
	n, err := r.queries.ClaimExpiredIdempotencyKey(ctx, tx, sqlc.ClaimExpiredIdempotencyKeyParams{
		Key:         c.Key,
		UserID:      c.UserID,
		RequestHash: c.RequestHash,
		ExpiresAt:   pgconv.TimeToPgtype(c.ExpiresAt),
	})
	if err != nil {
		return false, infra.WrapRepoErr("reclaim idempotency key", err)
	}
	return n == 1, nil
}

func (r *IdempotencyRepository) Lookup(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, tx, sqlc.GetIdempotencyKeyParams{Key: key, UserID: userID})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("lookup idempotency key", err)
	}
	return &shared.IdempotencyRecord{
		Key:                 row.Key,
		UserID:              row.UserID,
		Status:              shared.IdempotencyStatus(row.Status),
		RequestHash:         row.RequestHash,
		ResultReservationID: pgconv.UUIDPtrFromPgtype(row.ResultReservationID),
		ExpiresAt:           pgconv.TimeFromPgtype(row.ExpiresAt),
	}, nil
}

// Complete records the reservation a replay should return.
func (r *IdempotencyRepository) Complete(ctx context.Context, tx sqlc.DBTX, key, userID, reservationID uuid.UUID) error {
	sum := sha256.Sum256([]byte(reservationID.String()))
	err := r.queries.UpdateIdempotencyKeyCompleted(ctx, tx, sqlc.UpdateIdempotencyKeyCompletedParams{
		Key:                 key,
		UserID:              userID,
		ResponseBodyHash:    pgconv.StringToPgtype(hex.EncodeToString(sum[:])),
		ResultReservationID: pgconv.UUIDToPgtype(reservationID),
	})
	if err != nil {
		return infra.WrapRepoErr("complete idempotency key", err)
	}
	return nil
}

// Release drops a processing row so the client may retry after a failure.
// Completed rows are kept.
func (r *IdempotencyRepository) Release(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID) error {
	err := r.queries.DeleteProcessingIdempotencyKey(ctx, tx, sqlc.DeleteProcessingIdempotencyKeyParams{Key: key, UserID: userID})
	if err != nil {
		return infra.WrapRepoErr("release idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Purge(ctx context.Context, tx sqlc.DBTX) (int64, error) {
	n, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, tx)
	if err != nil {
		return 0, infra.WrapRepoErr("purge idempotency keys", err)
	}
	return n, nil
}
