package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/service"
	reqdto "booking-platform/internal/handler/dto/request"
	"booking-platform/internal/infra"
	"booking-platform/internal/pkg/clock"
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase/queries"
	"booking-platform/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/mock_reservation_commands.go -package=commandsmock

var (
	ErrDuplicateReservation   = errs.Define(errs.ErrConflict, errs.CodeDuplicate, "idempotency key was used for a different request")
	ErrIdempotencyInProgress  = errs.Define(errs.ErrConflict, errs.CodeIdempotencyInProgress, "a request with this idempotency key is still in progress")
	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")
)

const (
	idempotencyEndpoint = "POST /reservations"

	outcomeSuccess  = "success"
	outcomeReplayed = "replayed"
)

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	// Create books a slot. idempotencyKey is optional; when set, retries with the
	// same key and body replay the stored result.
	Create(ctx context.Context, req reqdto.CreateReservationRequest, actor reservation.Actor, idempotencyKey *uuid.UUID) (*CreateReservationResult, error)
	ChangeStatus(ctx context.Context, reservationID uuid.UUID, req reqdto.ChangeStatusRequest, actor reservation.Actor) (*queries.ReservationView, error)
	RecordPayment(ctx context.Context, reservationID uuid.UUID, req reqdto.RecordPaymentRequest, actor reservation.Actor) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	locker             shared.Locker
	dispatcher         shared.NotificationDispatcher
	metrics            shared.BookingMetrics
	reservationFactory *reservation.Factory
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
	idempotencyTTL     time.Duration
	tracer             trace.Tracer
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	locker shared.Locker,
	dispatcher shared.NotificationDispatcher,
	metrics shared.BookingMetrics,
	reservationFactory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	clock clock.Clock,
	cfg config.BookingConfig,
) ReservationCommands {
	ttl := cfg.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &reservationCommandsImpl{
		uow:                uow,
		locker:             locker,
		dispatcher:         dispatcher,
		metrics:            metrics,
		reservationFactory: reservationFactory,
		reservationQueries: reservationQueries,
		clock:              clock,
		idempotencyTTL:     ttl,
		tracer:             otel.Tracer("booking-platform/usecase/commands"),
	}
}

func (r *reservationCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	actor reservation.Actor,
	idempotencyKey *uuid.UUID,
) (*CreateReservationResult, error) {
	ctx, span := r.tracer.Start(ctx, "reservation.create", trace.WithAttributes(
		attribute.String("business.id", req.BusinessID.String()),
		attribute.String("service.id", req.ServiceID.String()),
		attribute.Bool("client.guest", actor.IsAnonymous() || req.Guest != nil),
	))
	defer span.End()

	result, err := r.create(ctx, req, actor, idempotencyKey)
	r.recordOutcome(span, "create", result, err)
	return result, err
}

func (r *reservationCommandsImpl) create(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	actor reservation.Actor,
	idempotencyKey *uuid.UUID,
) (*CreateReservationResult, error) {
	// An authenticated caller books as themselves unless they supply a guest.
	var clientID *uuid.UUID
	if !actor.IsAnonymous() && req.Guest == nil {
		id := actor.ID()
		clientID = &id
	}
	client, err := req.ClientIdentity(clientID)
	if err != nil {
		return nil, err
	}
	method, err := reservation.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	// guests share the nil user id namespace for their keys
	userID := actor.ID()
	requestHash := r.calculateRequestHash(req, clientID)

	if idempotencyKey != nil {
		replayID, claimErr := r.claimIdempotencyKey(ctx, *idempotencyKey, userID, requestHash)
		if claimErr != nil {
			return nil, claimErr
		}
		if replayID != nil {
			// Use system-level access for idempotency replay
			view, viewErr := r.reservationQueries.GetByIDSystem(ctx, *replayID)
			if viewErr != nil {
				return nil, viewErr
			}
			return &CreateReservationResult{Reservation: view, IsReplayed: true}, nil
		}
	}

	reservationID, err := r.book(ctx, req, client, method, idempotencyKey, userID)
	if err != nil {
		if idempotencyKey != nil {
			r.releaseIdempotencyKey(ctx, *idempotencyKey, userID)
		}
		return nil, err
	}

	view, err := r.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	r.notify(ctx, shared.NotificationJob{
		ReservationID: reservationID,
		Type:          reservation.NotificationCreated,
		Status:        reservation.StatusPending,
		OccurredAt:    r.clock.Now(),
	})

	return &CreateReservationResult{Reservation: view}, nil
}

// book runs the check-then-insert under the business lock. The overlap query
// locks the conflicting rows and the exclusion constraint rejects anything that
// slips past both.
func (r *reservationCommandsImpl) book(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	client reservation.ClientIdentity,
	method reservation.PaymentMethod,
	idempotencyKey *uuid.UUID,
	userID uuid.UUID,
) (uuid.UUID, error) {
	lease, err := r.acquireBusinessLock(ctx, req.BusinessID)
	if err != nil {
		return uuid.Nil, err
	}
	defer func() {
		if releaseErr := lease.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			slog.Warn("failed to release business lock", "business_id", req.BusinessID, "error", releaseErr.Error())
		}
	}()

	var reservationID uuid.UUID
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, svc, err := loadBookingTargets(ctx, tx.Reads(), req.BusinessID, req.ServiceID)
		if err != nil {
			return err
		}

		res, err := r.reservationFactory.CreateReservation(reservation.CreateParams{
			Business:        b,
			Service:         svc,
			Client:          client,
			DateTime:        req.DateTime,
			DurationMinutes: req.DurationMinutes,
			Notes:           req.Notes,
			PaymentMethod:   method,
		})
		if err != nil {
			return err
		}

		booked, err := tx.Reads().OverlappingReservations(ctx, b.ID(), res.Slot(), res.ID())
		if err != nil {
			return err
		}
		if err := reservation.CheckConflicts(res.Slot(), booked, res.ID()); err != nil {
			return err
		}

		id, err := tx.Reservations().Create(ctx, tx.DB(), res)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.WithCause(reservation.ErrSlotConflict, err)
			}
			return err
		}

		now := res.CreatedAt()
		if err := tx.Services().IncrementBookings(ctx, tx.DB(), svc.ID(), now); err != nil {
			return err
		}
		if err := tx.Businesses().RecordReservation(ctx, tx.DB(), b.ID(), now); err != nil {
			return err
		}

		if idempotencyKey != nil {
			if err := tx.Idempotency().Complete(ctx, tx.DB(), *idempotencyKey, userID, id); err != nil {
				return err
			}
		}

		reservationID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	slog.Info("reservation created", "reservation_id", reservationID, "business_id", req.BusinessID)
	return reservationID, nil
}

func (r *reservationCommandsImpl) acquireBusinessLock(ctx context.Context, businessID uuid.UUID) (shared.Lease, error) {
	start := time.Now()
	lease, err := r.locker.Acquire(ctx, shared.BusinessLockKey(businessID))
	r.metrics.LockWait(time.Since(start), err == nil)
	if err != nil {
		return nil, err
	}
	return lease, nil
}

func loadBookingTargets(ctx context.Context, reads shared.CommandReads, businessID, serviceID uuid.UUID) (*business.Business, *service.Service, error) {
	b, err := reads.BusinessByID(ctx, businessID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, business.ErrBusinessNotFound
		}
		return nil, nil, err
	}
	svc, err := reads.ServiceByID(ctx, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, service.ErrServiceNotFound
		}
		return nil, nil, err
	}
	return b, svc, nil
}

// claimIdempotencyKey returns the reservation to replay, or nil when this
// request now owns the key and must do the work.
func (r *reservationCommandsImpl) claimIdempotencyKey(ctx context.Context, key, userID uuid.UUID, requestHash string) (*uuid.UUID, error) {
	now := r.clock.Now()
	claim := shared.IdempotencyClaim{
		Key:         key,
		UserID:      userID,
		Endpoint:    idempotencyEndpoint,
		RequestHash: requestHash,
		ExpiresAt:   now.Add(r.idempotencyTTL),
	}

	var replayID *uuid.UUID
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayID = nil
		owned, err := tx.Idempotency().Claim(ctx, tx.DB(), claim)
		if err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		if owned {
			return nil
		}

		existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// released by a failing request between our insert and read
				return ErrIdempotencyInProgress
			}
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}

		if existing.Expired(now) {
			if owned, err = tx.Idempotency().Reclaim(ctx, tx.DB(), claim); err != nil {
				return errs.Mark(err, ErrIdempotencyCheckFailed)
			}
			if owned {
				return nil
			}
		}

		if !existing.SameRequest(requestHash) {
			return ErrDuplicateReservation
		}
		switch existing.Status {
		case shared.IdempotencyStatusCompleted:
			if existing.ResultReservationID == nil {
				return errs.New("completed idempotency key has no reservation")
			}
			replayID = existing.ResultReservationID
			return nil
		case shared.IdempotencyStatusProcessing:
			return ErrIdempotencyInProgress
		default:
			return errs.New(fmt.Sprintf("unknown idempotency status %q", existing.Status))
		}
	})
	if err != nil {
		return nil, err
	}
	return replayID, nil
}

func (r *reservationCommandsImpl) releaseIdempotencyKey(ctx context.Context, key, userID uuid.UUID) {
	err := r.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, tx.DB(), key, userID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "key", key, "error", err.Error())
	}
}

func (r *reservationCommandsImpl) ChangeStatus(
	ctx context.Context,
	reservationID uuid.UUID,
	req reqdto.ChangeStatusRequest,
	actor reservation.Actor,
) (*queries.ReservationView, error) {
	ctx, span := r.tracer.Start(ctx, "reservation.change_status", trace.WithAttributes(
		attribute.String("reservation.id", reservationID.String()),
		attribute.String("reservation.requested_status", req.Status),
	))
	defer span.End()

	view, err := r.changeStatus(ctx, reservationID, req, actor)
	r.recordOutcome(span, "change_status", nil, err)
	return view, err
}

func (r *reservationCommandsImpl) changeStatus(
	ctx context.Context,
	reservationID uuid.UUID,
	req reqdto.ChangeStatusRequest,
	actor reservation.Actor,
) (*queries.ReservationView, error) {
	change, err := req.ToDomain(actor)
	if err != nil {
		return nil, err
	}

	var changedAt time.Time
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, b, err := loadReservationForUpdate(ctx, tx.Reads(), reservationID)
		if err != nil {
			return err
		}

		changedAt = r.clock.Now()
		policy := reservation.Policy{
			OwnerID:            b.OwnerID(),
			CancellationWindow: b.CancellationWindow(),
		}
		if err := res.ChangeStatus(change, policy, changedAt); err != nil {
			return err
		}
		return tx.Reservations().UpdateStatus(ctx, tx.DB(), res)
	})
	if err != nil {
		return nil, err
	}

	view, err := r.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	r.notify(ctx, shared.NotificationJob{
		ReservationID: reservationID,
		Type:          reservation.NotificationTypeFor(change.To),
		Status:        change.To,
		OccurredAt:    changedAt,
	})

	return view, nil
}

// RecordPayment marks the reservation paid. Only the business owner or an admin may do so.
func (r *reservationCommandsImpl) RecordPayment(
	ctx context.Context,
	reservationID uuid.UUID,
	req reqdto.RecordPaymentRequest,
	actor reservation.Actor,
) (*queries.ReservationView, error) {
	method, err := reservation.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, b, err := loadReservationForUpdate(ctx, tx.Reads(), reservationID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !b.IsOwnedBy(actor.ID()) {
			return reservation.ErrForbidden
		}
		if err := res.RecordPayment(method, strings.TrimSpace(req.TransactionID), r.clock.Now()); err != nil {
			return err
		}
		return tx.Reservations().UpdatePayment(ctx, tx.DB(), res)
	})
	r.metrics.ReservationOutcome("record_payment", outcomeOf(err))
	if err != nil {
		return nil, err
	}

	return r.reservationQueries.GetByIDSystem(ctx, reservationID)
}

func loadReservationForUpdate(ctx context.Context, reads shared.CommandReads, reservationID uuid.UUID) (*reservation.Reservation, *business.Business, error) {
	res, err := reads.ReservationForUpdate(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, reservation.ErrReservationNotFound
		}
		return nil, nil, err
	}
	b, err := reads.BusinessByID(ctx, res.BusinessID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, business.ErrBusinessNotFound
		}
		return nil, nil, err
	}
	return res, b, nil
}

// notify hands the job to the dispatcher. A rejected job is logged and kept in
// the notification log as failed; the reservation change stands.
func (r *reservationCommandsImpl) notify(ctx context.Context, job shared.NotificationJob) {
	err := r.dispatcher.Dispatch(ctx, job)
	if err == nil {
		return
	}

	slog.Warn("failed to dispatch notification",
		"reservation_id", job.ReservationID,
		"type", job.Type,
		"error", err.Error())
	r.metrics.NotificationOutcome("dispatch", string(reservation.DeliveryFailed))

	entry := reservation.Notification{
		Type:    job.Type,
		Channel: reservation.ChannelEmail,
		SentAt:  r.clock.Now(),
		Status:  reservation.DeliveryFailed,
		Content: "dispatch failed: " + err.Error(),
	}
	logErr := r.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().Append(ctx, tx.DB(), job.ReservationID, entry)
	})
	if logErr != nil {
		slog.Error("failed to record notification failure", "reservation_id", job.ReservationID, "error", logErr.Error())
	}
}

func (r *reservationCommandsImpl) recordOutcome(span trace.Span, operation string, result *CreateReservationResult, err error) {
	outcome := outcomeOf(err)
	if result != nil && result.IsReplayed {
		outcome = outcomeReplayed
	}
	r.metrics.ReservationOutcome(operation, outcome)

	span.SetAttributes(attribute.String("reservation.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		if !errs.IsOperational(err) {
			span.SetStatus(codes.Error, err.Error())
		}
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	return strings.ToLower(string(errs.CodeOf(err)))
}

func (r *reservationCommandsImpl) calculateRequestHash(req reqdto.CreateReservationRequest, clientID *uuid.UUID) string {
	data, _ := json.Marshal(struct {
		Request  reqdto.CreateReservationRequest `json:"request"`
		ClientID *uuid.UUID                      `json:"client_id,omitempty"`
	}{req, clientID})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
