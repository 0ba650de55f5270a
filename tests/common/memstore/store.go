//go:build unit

// Package memstore is an in-memory shared.UnitOfWork for usecase tests.
// Writes become visible to other transactions on commit, except that inserted
// reservations are checked against every in-flight insert the way the
// exclusion constraint does.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/service"
	"booking-platform/internal/domain/user"
	"booking-platform/internal/infra"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/clock"
	"booking-platform/internal/usecase/shared"

	"github.com/google/uuid"
)

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type inflight struct {
	businessID uuid.UUID
	slot       reservation.TimeSlot
}

type Store struct {
	mu    sync.Mutex
	clock clock.Clock

	businesses           map[uuid.UUID]*business.Business
	services             map[uuid.UUID]*service.Service
	reservations         map[uuid.UUID]*reservation.Reservation
	users                map[uuid.UUID]*user.User
	idempotency          map[idemKey]shared.IdempotencyRecord
	notifications        map[uuid.UUID][]reservation.Notification
	serviceBookings      map[uuid.UUID]int64
	businessReservations map[uuid.UUID]int64
	pending              map[uuid.UUID]inflight

	commits   int
	rollbacks int
}

var _ shared.UnitOfWork = (*Store)(nil)

func New(clk clock.Clock) *Store {
	return &Store{
		clock:                clk,
		businesses:           make(map[uuid.UUID]*business.Business),
		services:             make(map[uuid.UUID]*service.Service),
		reservations:         make(map[uuid.UUID]*reservation.Reservation),
		users:                make(map[uuid.UUID]*user.User),
		idempotency:          make(map[idemKey]shared.IdempotencyRecord),
		notifications:        make(map[uuid.UUID][]reservation.Notification),
		serviceBookings:      make(map[uuid.UUID]int64),
		businessReservations: make(map[uuid.UUID]int64),
		pending:              make(map[uuid.UUID]inflight),
	}
}

// Seeding and inspection

func (s *Store) PutBusiness(b *business.Business) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.businesses[b.ID()] = b
}

func (s *Store) PutService(svc *service.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID()] = svc
}

func (s *Store) PutReservation(r *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[r.ID()] = r
}

func (s *Store) PutUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID()] = u
}

func (s *Store) PutIdempotency(rec shared.IdempotencyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idempotency[idemKey{rec.Key, rec.UserID}] = rec
}

func (s *Store) Reservation(id uuid.UUID) *reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil
	}
	return cloneReservation(r)
}

func (s *Store) ReservationsOf(businessID uuid.UUID) []*reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*reservation.Reservation
	for _, r := range s.reservations {
		if r.BusinessID() == businessID {
			out = append(out, cloneReservation(r))
		}
	}
	return out
}

func (s *Store) Business(id uuid.UUID) *business.Business {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.businesses[id]
}

func (s *Store) Service(id uuid.UUID) *service.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.services[id]
}

func (s *Store) User(id uuid.UUID) *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *Store) Idempotency(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.idempotency[idemKey{key, userID}]
	return rec, ok
}

func (s *Store) Notifications(reservationID uuid.UUID) []reservation.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notifications[reservationID])
}

func (s *Store) ServiceBookings(id uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serviceBookings[id]
}

func (s *Store) BusinessReservations(id uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.businessReservations[id]
}

// Commits and Rollbacks count finished Within calls.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

func (s *Store) Rollbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbacks
}

// UnitOfWork

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{store: s, overlay: make(map[uuid.UUID]*reservation.Reservation)}
	err := fn(ctx, tx)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range tx.inserted {
		delete(s.pending, id)
	}
	if err != nil {
		s.rollbacks++
		return err
	}
	for _, op := range tx.ops {
		op()
	}
	s.commits++
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{store: s}
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func cloneReservation(r *reservation.Reservation) *reservation.Reservation {
	return reservation.ReconstructReservation(reservation.ReconstructParams{
		ID:            r.ID(),
		BusinessID:    r.BusinessID(),
		ServiceID:     r.ServiceID(),
		Client:        r.Client(),
		Slot:          r.Slot(),
		Notes:         r.Notes(),
		Status:        r.Status(),
		Payment:       r.Payment(),
		Audit:         r.Audit(),
		Notifications: r.Notifications(),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
	})
}

func cloneBusiness(b *business.Business) *business.Business {
	c, err := business.ReconstructBusiness(
		b.ID(), b.OwnerID(),
		b.Name(), b.Description(), b.Timezone().Name(),
		b.Hours(),
		b.MinCancellationHours(),
		b.IsActive(),
		b.TotalReservations(),
		b.LastActivityAt(),
		b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func cloneService(svc *service.Service) *service.Service {
	return service.ReconstructService(
		svc.ID(), svc.BusinessID(),
		svc.Name(), svc.Description(),
		svc.Duration(), svc.Price(),
		svc.IsActive(), svc.IsPublic(),
		svc.TotalBookings(),
		svc.CreatedAt(), svc.UpdatedAt(),
	)
}

// reads serves committed state, with a transaction's own reservation writes on top.
type reads struct {
	store *Store
	tx    *memTx
}

func (r *reads) BusinessByID(_ context.Context, id uuid.UUID) (*business.Business, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.businesses[id]
	if !ok {
		return nil, notFound("business")
	}
	return cloneBusiness(b), nil
}

func (r *reads) ServiceByID(_ context.Context, id uuid.UUID) (*service.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	svc, ok := r.store.services[id]
	if !ok {
		return nil, notFound("service")
	}
	return cloneService(svc), nil
}

func (r *reads) ReservationForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if r.tx != nil {
		if res, ok := r.tx.overlay[id]; ok {
			return res, nil
		}
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, notFound("reservation")
	}
	return cloneReservation(res), nil
}

func (r *reads) OverlappingReservations(_ context.Context, businessID uuid.UUID, slot reservation.TimeSlot, exclude uuid.UUID) ([]reservation.Booked, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []reservation.Booked
	for _, res := range r.store.reservations {
		if res.BusinessID() != businessID || !res.Status().IsActive() || res.ID() == exclude {
			continue
		}
		if res.Slot().Overlaps(slot) {
			out = append(out, reservation.Booked{ID: res.ID(), Slot: res.Slot()})
		}
	}
	return out, nil
}

func (r *reads) ReservationUsage(_ context.Context, serviceID uuid.UUID) (service.Usage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var u service.Usage
	for _, res := range r.store.reservations {
		if res.ServiceID() != serviceID {
			continue
		}
		u.Total++
		if res.Status().IsActive() {
			u.Active++
		}
	}
	return u, nil
}

func (r *reads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.idempotency[idemKey{key, userID}]
	if !ok {
		return nil, notFound("idempotency key")
	}
	return &rec, nil
}

func (r *reads) UserByEmail(_ context.Context, email user.Email) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.IsActive() && u.Email() == email {
			return u, nil
		}
	}
	return nil, notFound("user")
}

func (r *reads) UserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return u, nil
}

type memTx struct {
	store    *Store
	overlay  map[uuid.UUID]*reservation.Reservation
	inserted []uuid.UUID
	ops      []func()
}

func (t *memTx) onCommit(op func()) { t.ops = append(t.ops, op) }

func (t *memTx) Reservations() shared.ReservationRepository   { return (*reservationRepo)(t) }
func (t *memTx) Businesses() shared.BusinessRepository        { return (*businessRepo)(t) }
func (t *memTx) Services() shared.ServiceRepository           { return (*serviceRepo)(t) }
func (t *memTx) Idempotency() shared.IdempotencyRepository    { return (*idempotencyRepo)(t) }
func (t *memTx) Notifications() shared.NotificationRepository { return (*notificationRepo)(t) }
func (t *memTx) Users() shared.UserRepository                 { return (*userRepo)(t) }
func (t *memTx) Reads() shared.CommandReads                   { return &reads{store: t.store, tx: t} }
func (t *memTx) DB() sqlc.DBTX                                { return nil }

type reservationRepo memTx

func (r *reservationRepo) Create(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	s := r.store
	s.mu.Lock()
	for _, other := range s.reservations {
		if other.BusinessID() == res.BusinessID() && other.Status().IsActive() && other.Slot().Overlaps(res.Slot()) {
			s.mu.Unlock()
			return uuid.Nil, infra.WrapRepoErr("reservation overlaps an active reservation", nil, infra.KindConflict)
		}
	}
	for _, p := range s.pending {
		if p.businessID == res.BusinessID() && p.slot.Overlaps(res.Slot()) {
			s.mu.Unlock()
			return uuid.Nil, infra.WrapRepoErr("reservation overlaps an active reservation", nil, infra.KindConflict)
		}
	}
	s.pending[res.ID()] = inflight{businessID: res.BusinessID(), slot: res.Slot()}
	s.mu.Unlock()

	r.inserted = append(r.inserted, res.ID())
	r.overlay[res.ID()] = res
	(*memTx)(r).onCommit(func() { s.reservations[res.ID()] = cloneReservation(res) })
	return res.ID(), nil
}

func (r *reservationRepo) UpdateStatus(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) error {
	return r.update(res)
}

func (r *reservationRepo) UpdatePayment(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) error {
	return r.update(res)
}

func (r *reservationRepo) update(res *reservation.Reservation) error {
	r.overlay[res.ID()] = res
	s := r.store
	(*memTx)(r).onCommit(func() { s.reservations[res.ID()] = cloneReservation(res) })
	return nil
}

type businessRepo memTx

func (r *businessRepo) Create(_ context.Context, _ sqlc.DBTX, b *business.Business) (uuid.UUID, error) {
	s := r.store
	(*memTx)(r).onCommit(func() { s.businesses[b.ID()] = b })
	return b.ID(), nil
}

func (r *businessRepo) UpdateHours(_ context.Context, _ sqlc.DBTX, b *business.Business) error {
	s := r.store
	(*memTx)(r).onCommit(func() { s.businesses[b.ID()] = b })
	return nil
}

func (r *businessRepo) RecordReservation(_ context.Context, _ sqlc.DBTX, businessID uuid.UUID, _ time.Time) error {
	s := r.store
	(*memTx)(r).onCommit(func() { s.businessReservations[businessID]++ })
	return nil
}

type serviceRepo memTx

func (r *serviceRepo) Create(_ context.Context, _ sqlc.DBTX, svc *service.Service) (uuid.UUID, error) {
	s := r.store
	(*memTx)(r).onCommit(func() { s.services[svc.ID()] = svc })
	return svc.ID(), nil
}

func (r *serviceRepo) IncrementBookings(_ context.Context, _ sqlc.DBTX, serviceID uuid.UUID, _ time.Time) error {
	s := r.store
	(*memTx)(r).onCommit(func() { s.serviceBookings[serviceID]++ })
	return nil
}

func (r *serviceRepo) Deactivate(_ context.Context, _ sqlc.DBTX, svc *service.Service) error {
	s := r.store
	(*memTx)(r).onCommit(func() { s.services[svc.ID()] = svc })
	return nil
}

// Delete enforces reservations.service_id like the foreign key does.
func (r *serviceRepo) Delete(_ context.Context, _ sqlc.DBTX, serviceID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, res := range s.reservations {
		if res.ServiceID() == serviceID {
			return infra.WrapRepoErr("service is referenced by reservations", nil, infra.KindForeignKeyViolated)
		}
	}
	(*memTx)(r).onCommit(func() { delete(s.services, serviceID) })
	return nil
}

// Idempotency rows are written immediately, like the single-statement upserts they stand in for.
type idempotencyRepo memTx

func (r *idempotencyRepo) Claim(_ context.Context, _ sqlc.DBTX, c shared.IdempotencyClaim) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	k := idemKey{c.Key, c.UserID}
	if _, ok := s.idempotency[k]; ok {
		return false, nil
	}
	s.idempotency[k] = processingRecord(c)
	return true, nil
}

func (r *idempotencyRepo) Reclaim(_ context.Context, _ sqlc.DBTX, c shared.IdempotencyClaim) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	k := idemKey{c.Key, c.UserID}
	rec, ok := s.idempotency[k]
	if !ok || !rec.Expired(s.clock.Now()) {
		return false, nil
	}
	s.idempotency[k] = processingRecord(c)
	return true, nil
}

func processingRecord(c shared.IdempotencyClaim) shared.IdempotencyRecord {
	return shared.IdempotencyRecord{
		Key:         c.Key,
		UserID:      c.UserID,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: c.RequestHash,
		ExpiresAt:   c.ExpiresAt,
	}
}

func (r *idempotencyRepo) Complete(_ context.Context, _ sqlc.DBTX, key, userID, reservationID uuid.UUID) error {
	s := r.store
	(*memTx)(r).onCommit(func() {
		k := idemKey{key, userID}
		rec := s.idempotency[k]
		rec.Status = shared.IdempotencyStatusCompleted
		rec.ResultReservationID = &reservationID
		s.idempotency[k] = rec
	})
	return nil
}

func (r *idempotencyRepo) Release(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	k := idemKey{key, userID}
	if rec, ok := s.idempotency[k]; ok && rec.Status == shared.IdempotencyStatusProcessing {
		delete(s.idempotency, k)
	}
	return nil
}

func (r *idempotencyRepo) Purge(_ context.Context, _ sqlc.DBTX) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	var n int64
	for k, rec := range s.idempotency {
		if rec.Expired(now) {
			delete(s.idempotency, k)
			n++
		}
	}
	return n, nil
}

type notificationRepo memTx

func (r *notificationRepo) Append(_ context.Context, _ sqlc.DBTX, reservationID uuid.UUID, n reservation.Notification) error {
	s := r.store
	(*memTx)(r).onCommit(func() { s.notifications[reservationID] = append(s.notifications[reservationID], n) })
	return nil
}

type userRepo memTx

func (r *userRepo) Create(_ context.Context, _ sqlc.DBTX, u *user.User) (uuid.UUID, error) {
	s := r.store
	s.mu.Lock()
	for _, other := range s.users {
		if other.IsActive() && other.Email() == u.Email() {
			s.mu.Unlock()
			return uuid.Nil, infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
		}
	}
	s.mu.Unlock()
	(*memTx)(r).onCommit(func() { s.users[u.ID()] = u })
	return u.ID(), nil
}

func (r *userRepo) UpdateLastLogin(_ context.Context, _ sqlc.DBTX, userID uuid.UUID, at time.Time) error {
	s := r.store
	(*memTx)(r).onCommit(func() {
		if u, ok := s.users[userID]; ok {
			u.RecordLogin(at)
		}
	})
	return nil
}

// RecordingDispatcher captures dispatched jobs. Err, when set, is returned instead.
type RecordingDispatcher struct {
	mu   sync.Mutex
	Err  error
	jobs []shared.NotificationJob
}

func (d *RecordingDispatcher) Dispatch(_ context.Context, job shared.NotificationJob) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.jobs = append(d.jobs, job)
	return nil
}

func (d *RecordingDispatcher) Jobs() []shared.NotificationJob {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.jobs)
}
