package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/pkg/clock"
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase/queries"
	"booking-platform/internal/usecase/shared"
)

//go:generate mockgen -source=notification.go -destination=../../../tests/mock/commands/mock_notification_commands.go -package=commandsmock

type RemindableReservationStore interface {
	ListRemindable(ctx context.Context, from, to time.Time, limit int32) ([]*queries.ReservationView, error)
}

// NotificationCommands delivers notification jobs and schedules reminders.
// Delivery outcomes are appended to the reservation's notification log and
// never affect the reservation itself.
type NotificationCommands interface {
	Deliver(ctx context.Context, job shared.NotificationJob) error
	EnqueueReminders(ctx context.Context, now time.Time) (int, error)
}

type notificationCommandsImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	remindable         RemindableReservationStore
	dispatcher         shared.NotificationDispatcher
	mailer             shared.Mailer
	publisher          shared.EventPublisher
	metrics            shared.BookingMetrics
	clock              clock.Clock
	reminderLead       time.Duration
	reminderBatch      int32
}

func NewNotificationCommands(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	remindable RemindableReservationStore,
	dispatcher shared.NotificationDispatcher,
	mailer shared.Mailer,
	publisher shared.EventPublisher,
	metrics shared.BookingMetrics,
	clock clock.Clock,
	cfg config.ReminderConfig,
) NotificationCommands {
	batch := cfg.Batch
	if batch <= 0 {
		batch = 200
	}
	return &notificationCommandsImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		remindable:         remindable,
		dispatcher:         dispatcher,
		mailer:             mailer,
		publisher:          publisher,
		metrics:            metrics,
		clock:              clock,
		reminderLead:       cfg.Lead,
		reminderBatch:      batch,
	}
}

func (n *notificationCommandsImpl) Deliver(ctx context.Context, job shared.NotificationJob) error {
	view, err := n.reservationQueries.GetByIDSystem(ctx, job.ReservationID)
	if err != nil {
		return err
	}

	msg := composeEmail(job, view)
	emailStatus, emailContent := n.outcome(reservation.ChannelEmail, n.mailer.Send(ctx, msg), msg.Subject)

	event := shared.DomainEvent{
		Name:          eventNameFor(job.Type),
		ReservationID: view.ID,
		BusinessID:    view.BusinessID,
		Status:        string(job.Status),
		OccurredAt:    job.OccurredAt,
		Attributes: map[string]any{
			"notification_type": string(job.Type),
			"service_id":        view.ServiceID.String(),
			"date_time":         view.DateTime,
		},
	}
	eventStatus, eventContent := n.outcome(reservation.ChannelEvent, n.publisher.Publish(ctx, event), event.Name)

	now := n.clock.Now()
	entries := []reservation.Notification{
		{Type: job.Type, Channel: reservation.ChannelEmail, SentAt: now, Status: emailStatus, Content: emailContent},
		{Type: job.Type, Channel: reservation.ChannelEvent, SentAt: now, Status: eventStatus, Content: eventContent},
	}
	return n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, entry := range entries {
			if err := tx.Notifications().Append(ctx, tx.DB(), job.ReservationID, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func (n *notificationCommandsImpl) outcome(channel reservation.Channel, err error, content string) (reservation.DeliveryStatus, string) {
	status := reservation.DeliverySent
	switch {
	case err == nil:
	case errs.Is(err, shared.ErrDeliverySkipped):
		status = reservation.DeliverySkipped
	default:
		status = reservation.DeliveryFailed
		content = content + ": " + err.Error()
		slog.Warn("notification delivery failed", "channel", channel, "error", err.Error())
	}
	n.metrics.NotificationOutcome(string(channel), string(status))
	return status, content
}

// EnqueueReminders dispatches a reminder for each confirmed reservation starting
// within the lead window that has not been reminded yet.
func (n *notificationCommandsImpl) EnqueueReminders(ctx context.Context, now time.Time) (int, error) {
	views, err := n.remindable.ListRemindable(ctx, now, now.Add(n.reminderLead), n.reminderBatch)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, v := range views {
		err := n.dispatcher.Dispatch(ctx, shared.NotificationJob{
			ReservationID: v.ID,
			Type:          reservation.NotificationReminder,
			Status:        reservation.Status(v.Status),
			OccurredAt:    now,
		})
		if err != nil {
			// picked up again on the next run
			slog.Warn("failed to enqueue reminder", "reservation_id", v.ID, "error", err.Error())
			if errs.Is(err, shared.ErrQueueFull) {
				break
			}
			continue
		}
		enqueued++
	}
	return enqueued, nil
}

func eventNameFor(t reservation.NotificationType) string {
	switch t {
	case reservation.NotificationCreated:
		return shared.EventReservationCreated
	case reservation.NotificationReminder:
		return shared.EventReservationReminder
	default:
		return shared.EventReservationStatusChanged
	}
}

func composeEmail(job shared.NotificationJob, v *queries.ReservationView) shared.EmailMessage {
	when := v.DateTime
	if loc, err := time.LoadLocation(v.BusinessTimezone); err == nil {
		when = when.In(loc)
	}
	whenText := when.Format("Mon, 02 Jan 2006 15:04 MST")

	var subject string
	switch job.Type {
	case reservation.NotificationCreated:
		subject = fmt.Sprintf("Reservation requested at %s", v.BusinessName)
	case reservation.NotificationConfirmed:
		subject = fmt.Sprintf("Reservation confirmed at %s", v.BusinessName)
	case reservation.NotificationCancelled:
		subject = fmt.Sprintf("Reservation cancelled at %s", v.BusinessName)
	case reservation.NotificationCompleted:
		subject = fmt.Sprintf("Thanks for visiting %s", v.BusinessName)
	case reservation.NotificationNoShow:
		subject = fmt.Sprintf("Missed reservation at %s", v.BusinessName)
	case reservation.NotificationReminder:
		subject = fmt.Sprintf("Reminder: %s at %s", v.ServiceName, v.BusinessName)
	default:
		subject = fmt.Sprintf("Reservation update from %s", v.BusinessName)
	}

	name := v.Client.Name
	if v.Client.DisplayName != "" {
		name = v.Client.DisplayName
	}
	body := fmt.Sprintf("Hi %s,\n\n%s: %s (%d min) on %s.\nStatus: %s\nReference: %s\n",
		name, v.BusinessName, v.ServiceName, v.DurationMinutes, whenText, v.Status, v.ID)
	if v.Audit.CancellationReason != "" {
		body += "Reason: " + v.Audit.CancellationReason + "\n"
	}

	return shared.EmailMessage{To: v.Client.Email, Subject: subject, Body: body}
}

// MaintenanceCommands performs periodic housekeeping.
type MaintenanceCommands interface {
	PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error)
}

type maintenanceCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewMaintenanceCommands(uow shared.UnitOfWork) MaintenanceCommands {
	return &maintenanceCommandsImpl{uow: uow}
}

func (m *maintenanceCommandsImpl) PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	var purged int64
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().Purge(ctx, tx.DB())
		purged = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return purged, nil
}
