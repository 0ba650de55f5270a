package reservation

import "time"

type NotificationType string

const (
	NotificationCreated   NotificationType = "reservation_created"
	NotificationConfirmed NotificationType = "reservation_confirmed"
	NotificationCancelled NotificationType = "reservation_cancelled"
	NotificationCompleted NotificationType = "reservation_completed"
	NotificationNoShow    NotificationType = "reservation_no_show"
	NotificationReminder  NotificationType = "reservation_reminder"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelEvent Channel = "event"
)

type DeliveryStatus string

const (
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
	DeliverySkipped DeliveryStatus = "skipped"
)

// NotificationTypeFor maps the status a reservation moved into to its notification.
func NotificationTypeFor(s Status) NotificationType {
	switch s {
	case StatusConfirmed:
		return NotificationConfirmed
	case StatusCancelled:
		return NotificationCancelled
	case StatusCompleted:
		return NotificationCompleted
	case StatusNoShow:
		return NotificationNoShow
	default:
		return NotificationCreated
	}
}

// Notification is one entry of the append-only notification log.
type Notification struct {
	Type    NotificationType
	Channel Channel
	SentAt  time.Time
	Status  DeliveryStatus
	Content string
}
