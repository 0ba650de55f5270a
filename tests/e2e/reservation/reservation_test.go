//go:build e2e

package reservation_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"booking-platform/internal/domain/user"
	"booking-platform/internal/handler/dto/request"
	"booking-platform/internal/handler/dto/response"
	"booking-platform/internal/handler/httperr"
	"booking-platform/tests/common/authtest"
	"booking-platform/tests/common/dbtest"
	"booking-platform/tests/common/httptest"
	"booking-platform/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const reservationsURL = "/api/reservations"

type reservationSuite struct {
	e2e.SharedSuite

	ownerToken  string
	clientToken string
	otherToken  string
	adminToken  string
	businessID  uuid.UUID
	serviceID   uuid.UUID
	monday      time.Time
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(reservationSuite))
}

func (s *reservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleOwner))
	s.ownerToken = authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
	s.clientToken = authtest.CreateAndLogin(t, s.DB, s.Router, "client@example.com", string(user.RoleClient))
	s.otherToken = authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", string(user.RoleClient))
	s.adminToken = authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))

	s.businessID = dbtest.CreateTestBusiness(t, s.DB, ownerID, "UTC", 24)
	s.serviceID = dbtest.CreateTestService(t, s.DB, s.businessID, 60, 4500)
	s.monday = nextMonday(time.Now().UTC().AddDate(0, 0, 14))
}

// nextMonday returns 00:00 UTC of the first Monday on or after t.
func nextMonday(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func (s *reservationSuite) at(hh, mm int) time.Time {
	return s.monday.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

func (s *reservationSuite) book(token string, start time.Time, minutes int) (int, *response.ReservationResponse, *httperr.Response) {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, request.CreateReservationRequest{
		BusinessID:      s.businessID,
		ServiceID:       s.serviceID,
		DateTime:        start,
		DurationMinutes: minutes,
	}, token)
	return decode(t, w.Code, w.Body.Bytes())
}

func decode(t *testing.T, code int, raw []byte) (int, *response.ReservationResponse, *httperr.Response) {
	t.Helper()
	if code >= 300 {
		var e httperr.Response
		require.NoError(t, json.Unmarshal(raw, &e), string(raw))
		return code, nil, &e
	}
	var r response.ReservationResponse
	require.NoError(t, json.Unmarshal(raw, &r), string(raw))
	return code, &r, nil
}

func (s *reservationSuite) changeStatus(token string, id uuid.UUID, status, reason string) (int, *httperr.Response) {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf("%s/%s/status", reservationsURL, id),
		request.ChangeStatusRequest{Status: status, Reason: reason}, token)
	code, _, e := decode(t, w.Code, w.Body.Bytes())
	return code, e
}

func (s *reservationSuite) TestBookingScenario() {
	s.Run("overlap, adjacency, break and closed day", func() {
		code, first, _ := s.book(s.clientToken, s.at(10, 0), 60)
		s.Require().Equal(http.StatusCreated, code)
		s.Equal("pending", first.Status)
		s.Equal(int64(4500), first.Payment.AmountCents)
		s.Equal("registered", first.Client.Kind)

		code, _, e := s.book(s.otherToken, s.at(10, 30), 60)
		s.Equal(http.StatusConflict, code)
		s.Equal("SLOT_CONFLICT", string(e.Error.Code))

		code, _, _ = s.book(s.otherToken, s.at(11, 0), 60)
		s.Equal(http.StatusCreated, code, "back to back slots do not overlap")

		code, _, e = s.book(s.otherToken, s.at(12, 0), 60)
		s.Equal(http.StatusUnprocessableEntity, code)
		s.Equal("OUT_OF_HOURS", string(e.Error.Code))
		s.Equal(map[string]any{"reason": "OVERLAPS_BREAK"}, e.Detail)

		code, _, e = s.book(s.otherToken, s.at(16, 30), 60)
		s.Equal(http.StatusUnprocessableEntity, code)
		s.Equal(map[string]any{"reason": "OUTSIDE_HOURS"}, e.Detail)

		code, _, e = s.book(s.otherToken, s.monday.AddDate(0, 0, -1).Add(10*time.Hour), 60)
		s.Equal(http.StatusUnprocessableEntity, code)
		s.Equal(map[string]any{"reason": "CLOSED"}, e.Detail)
	})

	s.Run("prorated price for a shorter booking", func() {
		code, r, _ := s.book(s.clientToken, s.at(14, 0), 45)
		s.Require().Equal(http.StatusCreated, code)
		s.Equal(int64(3375), r.Payment.AmountCents)
		s.Equal(45, r.DurationMinutes)
	})

	s.Run("past start is rejected", func() {
		code, _, e := s.book(s.clientToken, time.Now().UTC().Add(-time.Hour).Truncate(time.Minute), 60)
		s.Equal(http.StatusBadRequest, code)
		s.Equal("VALIDATION_ERROR", string(e.Error.Code))
	})
}

func (s *reservationSuite) TestConcurrentOverlappingBookings() {
	s.Run("exactly one of many overlapping requests wins", func() {
		const n = 10
		var wg sync.WaitGroup
		codes := make(chan int, n)

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				// staggered starts inside the same hour all overlap each other
				start := s.at(9, 0).Add(time.Duration(i%4) * 15 * time.Minute)
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, request.CreateReservationRequest{
					BusinessID: s.businessID,
					ServiceID:  s.serviceID,
					DateTime:   start,
					Guest: &request.GuestClientRequest{
						Name:  fmt.Sprintf("Guest %d", i),
						Email: fmt.Sprintf("guest%d@example.com", i),
						Phone: "+15550100",
					},
				}, "")
				codes <- w.Code
			}(i)
		}
		wg.Wait()
		close(codes)

		created := 0
		for code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
			default:
				s.Failf("unexpected status", "got %d", code)
			}
		}
		s.Equal(1, created)

		s.Equal(1, dbtest.CountActiveReservations(s.T(), s.DB, s.businessID))
	})
}

func (s *reservationSuite) TestIdempotency() {
	s.Run("replay, mismatch and per-caller scope", func() {
		t := s.T()
		key := uuid.NewString()
		body := request.CreateReservationRequest{BusinessID: s.businessID, ServiceID: s.serviceID, DateTime: s.at(9, 0)}
		headers := map[string]string{
			"Idempotency-Key": key,
			"Authorization":   "Bearer " + s.clientToken,
		}

		first := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, body, headers)
		s.Require().Equal(http.StatusCreated, first.Code, first.Body.String())
		_, created, _ := decode(t, first.Code, first.Body.Bytes())

		replay := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, body, headers)
		s.Require().Equal(http.StatusOK, replay.Code, replay.Body.String())
		s.Equal("true", replay.Header().Get("Idempotent-Replayed"))
		_, replayed, _ := decode(t, replay.Code, replay.Body.Bytes())
		s.Equal(created.ID, replayed.ID)

		changed := body
		changed.DateTime = s.at(14, 0)
		mismatch := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, changed, headers)
		s.Equal(http.StatusConflict, mismatch.Code)
		_, _, e := decode(t, mismatch.Code, mismatch.Body.Bytes())
		s.Equal("DUPLICATE", string(e.Error.Code))

		// the same key from another caller is a separate request
		other := map[string]string{"Idempotency-Key": key, "Authorization": "Bearer " + s.otherToken}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, changed, other)
		s.Equal(http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("malformed key", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{BusinessID: s.businessID, ServiceID: s.serviceID, DateTime: s.at(9, 0)},
			map[string]string{"Idempotency-Key": "not-a-uuid", "Authorization": "Bearer " + s.clientToken})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *reservationSuite) TestStatusLifecycle() {
	s.Run("owner confirms, client cancels, second cancel fails", func() {
		code, r, _ := s.book(s.clientToken, s.at(10, 0), 60)
		s.Require().Equal(http.StatusCreated, code)

		code, e := s.changeStatus(s.clientToken, r.ID, "confirmed", "")
		s.Equal(http.StatusForbidden, code)
		s.Equal("FORBIDDEN", string(e.Error.Code))

		code, _ = s.changeStatus(s.ownerToken, r.ID, "confirmed", "")
		s.Require().Equal(http.StatusOK, code)

		code, _ = s.changeStatus(s.clientToken, r.ID, "cancelled", "schedule clash")
		s.Require().Equal(http.StatusOK, code)

		code, e = s.changeStatus(s.clientToken, r.ID, "cancelled", "")
		s.Equal(http.StatusUnprocessableEntity, code)
		s.Equal("INVALID_TRANSITION", string(e.Error.Code))

		// the cancelled interval is free again
		code, _, _ = s.book(s.otherToken, s.at(10, 0), 60)
		s.Equal(http.StatusCreated, code)
	})

	s.Run("late cancellation by the client is refused", func() {
		var clientID uuid.UUID
		s.Require().NoError(s.DB.QueryRow(s.T().Context(), "SELECT id FROM users WHERE email = 'client@example.com'").Scan(&clientID))

		// seeded directly; now+2h may fall outside business hours
		id := uuid.New()
		soon := time.Now().UTC().Add(2 * time.Hour)
		_, err := s.DB.Exec(s.T().Context(), `
			INSERT INTO reservations (id, business_id, service_id, client_id, start_at, end_at, duration_minutes, status, amount_cents)
			VALUES ($1, $2, $3, $4, $5, $6, 60, 'confirmed', 4500)`,
			id, s.businessID, s.serviceID, clientID, soon, soon.Add(time.Hour))
		s.Require().NoError(err)

		code, e := s.changeStatus(s.clientToken, id, "cancelled", "")
		s.Equal(http.StatusUnprocessableEntity, code)
		s.Equal("CANCELLATION_WINDOW_EXPIRED", string(e.Error.Code))

		code, _ = s.changeStatus(s.adminToken, id, "cancelled", "ops override")
		s.Equal(http.StatusOK, code)
	})
}

func (s *reservationSuite) TestVisibility() {
	s.Run("guest reads with their email, strangers cannot", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, request.CreateReservationRequest{
			BusinessID: s.businessID,
			ServiceID:  s.serviceID,
			DateTime:   s.at(15, 0),
			Guest:      &request.GuestClientRequest{Name: "Jamie Guest", Email: "Jamie@Example.com", Phone: "+1 555 0100"},
		}, "")
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		_, r, _ := decode(t, w.Code, w.Body.Bytes())
		s.Equal("guest", r.Client.Kind)
		s.Equal("jamie@example.com", r.Client.Email)

		path := fmt.Sprintf("%s/%s", reservationsURL, r.ID)
		s.Equal(http.StatusOK, httptest.PerformRequest(t, s.Router, http.MethodGet, path+"?guestEmail=jamie@example.com", nil, "").Code)
		s.Equal(http.StatusNotFound, httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, "").Code)
		s.Equal(http.StatusForbidden, httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, s.otherToken).Code)
		s.Equal(http.StatusOK, httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, s.ownerToken).Code)
	})

	s.Run("business listing pages by cursor", func() {
		t := s.T()
		for _, hh := range []int{9, 10, 11, 14} {
			code, _, _ := s.book(s.clientToken, s.at(hh, 0), 60)
			s.Require().Equal(http.StatusCreated, code)
		}

		url := fmt.Sprintf("/api/businesses/%s/reservations?limit=3", s.businessID)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.ownerToken)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var page response.ReservationListResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
		s.Len(page.Items, 3)
		s.Require().NotEmpty(page.NextCursor)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url+"&cursor="+page.NextCursor, nil, s.ownerToken)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var next response.ReservationListResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &next))
		s.Len(next.Items, 1)
		s.Empty(next.NextCursor)

		s.Equal(http.StatusForbidden, httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.clientToken).Code)
	})
}

func (s *reservationSuite) TestAvailability() {
	s.Run("booked slots disappear from the list", func() {
		t := s.T()
		code, _, _ := s.book(s.clientToken, s.at(10, 0), 60)
		s.Require().Equal(http.StatusCreated, code)

		url := fmt.Sprintf("/api/businesses/%s/availability?serviceId=%s&date=%s", s.businessID, s.serviceID, s.monday.Format(time.DateOnly))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		var body response.AvailabilityResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		starts := make(map[string]bool, len(body.Slots))
		for _, slot := range body.Slots {
			starts[slot.Start.UTC().Format("15:04")] = true
		}
		s.True(starts["09:00"])
		s.False(starts["09:15"])
		s.False(starts["10:00"])
		s.False(starts["10:45"])
		s.True(starts["11:00"])
		s.False(starts["12:00"])
		s.True(starts["16:00"])
		s.False(starts["16:15"])
	})

	s.Run("bad date", func() {
		url := fmt.Sprintf("/api/businesses/%s/availability?serviceId=%s&date=tomorrow", s.businessID, s.serviceID)
		s.Equal(http.StatusBadRequest, httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, "").Code)
	})
}

func (s *reservationSuite) TestServiceDeletion() {
	deleteService := func(id uuid.UUID) (int, response.DeleteServiceResponse) {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/services/"+id.String(), nil, s.ownerToken)
		var body response.DeleteServiceResponse
		if w.Code == http.StatusOK {
			s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
		}
		return w.Code, body
	}
	isActive := func(id uuid.UUID) bool {
		var active bool
		s.Require().NoError(s.DB.QueryRow(s.T().Context(), "SELECT is_active FROM services WHERE id = $1", id).Scan(&active))
		return active
	}

	s.Run("completed history keeps the row", func() {
		var clientID uuid.UUID
		s.Require().NoError(s.DB.QueryRow(s.T().Context(), "SELECT id FROM users WHERE email = 'client@example.com'").Scan(&clientID))

		past := s.monday.AddDate(0, 0, -28).Add(10 * time.Hour)
		_, err := s.DB.Exec(s.T().Context(), `
			INSERT INTO reservations (id, business_id, service_id, client_id, start_at, end_at, duration_minutes, status, amount_cents)
			VALUES ($1, $2, $3, $4, $5, $6, 60, 'completed', 4500)`,
			uuid.New(), s.businessID, s.serviceID, clientID, past, past.Add(time.Hour))
		s.Require().NoError(err)

		code, body := deleteService(s.serviceID)
		s.Require().Equal(http.StatusOK, code)
		s.Equal("soft", body.Mode)
		s.False(isActive(s.serviceID))
	})

	s.Run("unreferenced service is removed", func() {
		code, body := deleteService(s.serviceID)
		s.Require().Equal(http.StatusOK, code)
		s.Equal("hard", body.Mode)

		var n int
		s.Require().NoError(s.DB.QueryRow(s.T().Context(), "SELECT count(*) FROM services WHERE id = $1", s.serviceID).Scan(&n))
		s.Zero(n)
	})
}
