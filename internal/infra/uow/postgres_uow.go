package uow

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/service"
	"booking-platform/internal/domain/user"
	"booking-platform/internal/infra/readstore"
	"booking-platform/internal/infra/repository"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// retryable SQLSTATEs: serialization_failure, deadlock_detected
var retryableCodes = map[string]bool{"40001": true, "40P01": true}

type retryPolicy struct {
	attempts int
	base     time.Duration
}

// backoff doubles per attempt and adds up to 20% jitter.
func (p retryPolicy) backoff(attempt int) time.Duration {
	d := p.base << attempt
	if j := int64(d / 5); j > 0 {
		d += time.Duration(rand.Int64N(j))
	}
	return d
}

// repositories are stateless; one set is shared by every transaction.
type repositories struct {
	reservations  *repository.ReservationRepository
	businesses    *repository.BusinessRepository
	services      *repository.ServiceRepository
	idempotency   *repository.IdempotencyRepository
	notifications *repository.NotificationRepository
	users         *repository.UserRepository
}

type PostgresUoW struct {
	pool  *pgxpool.Pool
	q     *sqlc.Queries
	repos repositories
	retry retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
		q:    q,
		repos: repositories{
			reservations:  repository.NewReservationRepository(q),
			businesses:    repository.NewBusinessRepository(q),
			services:      repository.NewServiceRepository(q),
			idempotency:   repository.NewIdempotencyRepository(q),
			notifications: repository.NewNotificationRepository(q),
			users:         repository.NewUserRepository(q),
		},
		retry: retryPolicy{attempts: 4, base: 100 * time.Millisecond},
	}
}

// Within runs fn in a READ COMMITTED transaction, retrying the whole closure on
// serialization failures and deadlocks. fn must therefore be safe to re-run.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var err error
	for attempt := range u.retry.attempts {
		err = u.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		if attempt == u.retry.attempts-1 {
			break
		}

		wait := u.retry.backoff(attempt)
		slog.Warn("retrying transaction", "attempt", attempt+1, "wait_ms", wait.Milliseconds(), "error", err.Error())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	slog.Error("transaction failed after max retries", "attempts", u.retry.attempts, "error", err.Error())
	return errs.Mark(err, errMaxRetriesExceeded)
}

// runOnce owns exactly one pgx transaction; it is rolled back before any retry.
func (u *PostgresUoW) runOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer rollback(ctx, pgxTx)

	if err := fn(ctx, &pgTx{db: pgxTx, uow: u}); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// WithinReadOnly gives fn a consistent snapshot across several queries.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer rollback(ctx, pgxTx)

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, db: u.pool}
}

// rollback after a successful commit returns ErrTxClosed, which is expected.
func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errs.Is(err, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", err.Error())
	}
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	return errs.As(err, &pgErr) && retryableCodes[pgErr.Code]
}

type pgTx struct {
	db  sqlc.DBTX
	uow *PostgresUoW
}

func (t *pgTx) DB() sqlc.DBTX { return t.db }

func (t *pgTx) Reservations() shared.ReservationRepository { return t.uow.repos.reservations }
func (t *pgTx) Businesses() shared.BusinessRepository { return t.uow.repos.businesses }
func (t *pgTx) Services() shared.ServiceRepository { return t.uow.repos.services }
func (t *pgTx) Idempotency() shared.IdempotencyRepository { return t.uow.repos.idempotency }
func (t *pgTx) Notifications() shared.NotificationRepository { return t.uow.repos.notifications }
func (t *pgTx) Users() shared.UserRepository { return t.uow.repos.users }

func (t *pgTx) Reads() shared.CommandReads {
	return &commandReads{uow: t.uow, db: t.db}
}

// commandReads binds the shared repositories to one connection or transaction.
type commandReads struct {
	uow *PostgresUoW
	db  sqlc.DBTX
}

func (r *commandReads) BusinessByID(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	return r.uow.repos.businesses.FindByID(ctx, r.db, id)
}

func (r *commandReads) ServiceByID(ctx context.Context, id uuid.UUID) (*service.Service, error) {
	return r.uow.repos.services.FindByID(ctx, r.db, id)
}

func (r *commandReads) ReservationForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.uow.repos.reservations.FindForUpdate(ctx, r.db, id)
}

func (r *commandReads) OverlappingReservations(ctx context.Context, businessID uuid.UUID, slot reservation.TimeSlot, exclude uuid.UUID) ([]reservation.Booked, error) {
	return r.uow.repos.reservations.FindOverlapping(ctx, r.db, businessID, slot, exclude)
}

func (r *commandReads) ReservationUsage(ctx context.Context, serviceID uuid.UUID) (service.Usage, error) {
	return r.uow.repos.services.ReservationUsage(ctx, r.db, serviceID)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	return r.uow.repos.idempotency.Lookup(ctx, r.db, key, userID)
}

func (r *commandReads) UserByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	return r.uow.repos.users.FindByEmail(ctx, r.db, email)
}

// UserByID reads the public profile; the password hash is not loaded.
func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	view, err := readstore.NewUserReadStore(r.uow.q, r.db).FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(view.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(view.ID, email, view.DisplayName, "", role, view.LastLogin, view.IsActive, view.CreatedAt, view.CreatedAt), nil
}
