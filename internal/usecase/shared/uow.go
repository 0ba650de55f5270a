package shared

import (
	"context"
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/service"
	"booking-platform/internal/domain/user"
	sqlc "booking-platform/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Businesses() BusinessRepository
	Services() ServiceRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

// CommandReads loads aggregates for the write side. Reads issued through a Tx
// see that transaction's snapshot and locks.
type CommandReads interface {
	BusinessByID(ctx context.Context, id uuid.UUID) (*business.Business, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*service.Service, error)
	ReservationForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// OverlappingReservations locks the pending/confirmed rows of businessID whose
	// interval intersects slot, skipping exclude.
	OverlappingReservations(ctx context.Context, businessID uuid.UUID, slot reservation.TimeSlot, exclude uuid.UUID) ([]reservation.Booked, error)
	ReservationUsage(ctx context.Context, serviceID uuid.UUID) (service.Usage, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	UserByEmail(ctx context.Context, email user.Email) (*user.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
	UpdatePayment(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
}

type BusinessRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, b *business.Business) (uuid.UUID, error)
	UpdateHours(ctx context.Context, tx sqlc.DBTX, b *business.Business) error
	RecordReservation(ctx context.Context, tx sqlc.DBTX, businessID uuid.UUID, at time.Time) error
}

type ServiceRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, svc *service.Service) (uuid.UUID, error)
	IncrementBookings(ctx context.Context, tx sqlc.DBTX, serviceID uuid.UUID, at time.Time) error
	Deactivate(ctx context.Context, tx sqlc.DBTX, svc *service.Service) error
	Delete(ctx context.Context, tx sqlc.DBTX, serviceID uuid.UUID) error
}

type IdempotencyRepository interface {
	Claim(ctx context.Context, tx sqlc.DBTX, c IdempotencyClaim) (bool, error)
	Reclaim(ctx context.Context, tx sqlc.DBTX, c IdempotencyClaim) (bool, error)
	Complete(ctx context.Context, tx sqlc.DBTX, key, userID, reservationID uuid.UUID) error
	Release(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID) error
	Purge(ctx context.Context, tx sqlc.DBTX) (int64, error)
}

type NotificationRepository interface {
	Append(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID, n reservation.Notification) error
}

type UserRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, at time.Time) error
}
