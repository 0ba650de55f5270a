package response

import (
	"time"

	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ClientResponse struct {
	Kind        string     `json:"kind"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
}

type PaymentResponse struct {
	Method        string     `json:"method"`
	AmountCents   int64      `json:"amount_cents"`
	Currency      string     `json:"currency"`
	IsPaid        bool       `json:"is_paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
}

type AuditResponse struct {
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	ConfirmedBy        *uuid.UUID `json:"confirmed_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy        *uuid.UUID `json:"cancelled_by,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	ActualDuration     *int       `json:"actual_duration,omitempty"`
}

type NotificationResponse struct {
	Type    string    `json:"type"`
	Channel string    `json:"channel"`
	Status  string    `json:"status"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

type ReservationResponse struct {
	ID               uuid.UUID              `json:"id"`
	BusinessID       uuid.UUID              `json:"business_id"`
	BusinessName     string                 `json:"business_name"`
	BusinessTimezone string                 `json:"business_timezone"`
	ServiceID        uuid.UUID              `json:"service_id"`
	ServiceName      string                 `json:"service_name"`
	Client           ClientResponse         `json:"client"`
	DateTime         time.Time              `json:"date_time"`
	EndTime          time.Time              `json:"end_time"`
	LocalDateTime    string                 `json:"local_date_time"`
	DurationMinutes  int                    `json:"duration_minutes"`
	Status           string                 `json:"status"`
	Notes            string                 `json:"notes"`
	Payment          PaymentResponse        `json:"payment"`
	Audit            AuditResponse          `json:"audit"`
	Notifications    []NotificationResponse `json:"notifications"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func FromReservationView(v *queries.ReservationView) (*ReservationResponse, error) {
	var res ReservationResponse
	if err := copier.CopyWithOption(&res, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, errs.Wrap(err, "map reservation view")
	}
	if res.Notifications == nil {
		res.Notifications = []NotificationResponse{}
	}
	res.LocalDateTime = v.DateTime.In(loadLocation(v.BusinessTimezone)).Format(time.RFC3339)
	return &res, nil
}

type ReservationListResponse struct {
	Items      []*ReservationResponse `json:"items"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

func FromReservationPage(p *queries.ReservationPage) (*ReservationListResponse, error) {
	res := &ReservationListResponse{Items: make([]*ReservationResponse, 0, len(p.Items))}
	for _, it := range p.Items {
		item, err := FromReservationView(it)
		if err != nil {
			return nil, err
		}
		res.Items = append(res.Items, item)
	}
	if p.NextCursor != nil {
		res.NextCursor = p.NextCursor.After
	}
	return res, nil
}
