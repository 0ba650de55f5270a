//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/user"
	"booking-platform/internal/handler/api"
	reqdto "booking-platform/internal/handler/dto/request"
	resdto "booking-platform/internal/handler/dto/response"
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase/commands"
	"booking-platform/internal/usecase/queries"
	"booking-platform/tests/common/builder"
	"booking-platform/tests/common/httptest"
	"booking-platform/tests/common/testutil"
	commandsmock "booking-platform/tests/mock/commands"
	queriesmock "booking-platform/tests/mock/queries"

	cerrors "github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler

	callerID   uuid.UUID
	callerRole user.Role
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.callerID = uuid.New()
	s.callerRole = user.RoleClient

	// stands in for the auth middleware: a bearer header marks the caller as authenticated
	fakeAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.callerID)
			c.Set("user_role", s.callerRole)
		}
		c.Next()
	}

	s.router.POST("/reservations", fakeAuth, s.handler.Create)
	s.router.GET("/reservations/me", fakeAuth, s.handler.ListMine)
	s.router.GET("/reservations/:id", fakeAuth, s.handler.Get)
	s.router.PATCH("/reservations/:id/status", fakeAuth, s.handler.ChangeStatus)
	s.router.PATCH("/reservations/:id/payment", fakeAuth, s.handler.RecordPayment)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func guestCreateBody() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		BusinessID:    uuid.New(),
		ServiceID:     uuid.New(),
		DateTime:      builder.MondayAt(10, 0, nil),
		Notes:         "first visit",
		PaymentMethod: "cash",
		Guest: &reqdto.GuestClientRequest{
			Name:  "Jamie Guest",
			Email: "jamie@example.com",
			Phone: "+1 555 010 2030",
		},
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail map[string]string `json:"detail"`
}

func decodeError(s *suite.Suite, body []byte) errorBody {
	var eb errorBody
	s.Require().NoError(json.Unmarshal(body, &eb))
	return eb
}

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"
	reqBody := guestCreateBody()
	view := builder.NewReservationBuilder().AsGuest().BuildReadModel()

	s.Run("success: anonymous guest booking returns 201", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), reservation.Actor{}, (*uuid.UUID)(nil)).
			DoAndReturn(func(_ context.Context, req reqdto.CreateReservationRequest, _ reservation.Actor, _ *uuid.UUID) (*commands.CreateReservationResult, error) {
				s.Equal(reqBody.BusinessID, req.BusinessID)
				s.True(reqBody.DateTime.Equal(req.DateTime))
				s.Require().NotNil(req.Guest)
				s.Equal("jamie@example.com", req.Guest.Email)
				return &commands.CreateReservationResult{Reservation: view}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal("guest", response.Client.Kind)
		s.Empty(rec.Header().Get("Idempotent-Replayed"))
		s.NotNil(response.Notifications)
	})

	s.Run("success: authenticated caller books as themselves", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), reservation.NewActor(s.callerID, s.callerRole), gomock.Nil()).
			Return(&commands.CreateReservationResult{Reservation: view}, nil).Times(1)

		body := reqBody
		body.Guest = nil
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("idempotency: replayed result returns 200 with replay header", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), &key).
			Return(&commands.CreateReservationResult{Reservation: view, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": key.String()})

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("error: malformed Idempotency-Key is rejected before the usecase", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key must be a UUID")
	})

	s.Run("error: 400 Bad Request on binding errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing business_id", mutate: testutil.Field("business_id", nil)},
			{name: "missing service_id", mutate: testutil.Field("service_id", nil)},
			{name: "missing date_time", mutate: testutil.Field("date_time", nil)},
			{name: "duration below minimum", mutate: testutil.Field("duration_minutes", 10)},
			{name: "duration above maximum", mutate: testutil.Field("duration_minutes", 481)},
			{name: "unknown payment method", mutate: testutil.Field("payment_method", "barter")},
			{name: "guest without email", mutate: testutil.Field("guest.email", nil)},
			{name: "guest with malformed email", mutate: testutil.Field("guest.email", "jamie-at-example")},
			{name: "guest name too long", mutate: testutil.Field("guest.name", strings.Repeat("x", 101))},
			{name: "notes too long", mutate: testutil.Field("notes", strings.Repeat("n", 501))},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: maps domain errors to status and code", func() {
		cases := []struct {
			name         string
			err          error
			expectStatus int
			expectCode   errs.Code
			expectDetail map[string]string
		}{
			{
				name:         "slot conflict",
				err:          reservation.ErrSlotConflict,
				expectStatus: http.StatusConflict,
				expectCode:   errs.CodeSlotConflict,
			},
			{
				name:         "idempotency key still processing",
				err:          commands.ErrIdempotencyInProgress,
				expectStatus: http.StatusConflict,
				expectCode:   errs.CodeIdempotencyInProgress,
			},
			{
				name:         "outside business hours",
				err:          cerrors.Wrap(&reservation.HoursViolationError{Check: business.HoursOverlapsBreak}, "create reservation"),
				expectStatus: http.StatusUnprocessableEntity,
				expectCode:   errs.CodeOutOfHours,
				expectDetail: map[string]string{"reason": "OVERLAPS_BREAK"},
			},
			{
				name:         "start not in future",
				err:          reservation.ErrStartNotInFuture,
				expectStatus: http.StatusBadRequest,
				expectCode:   errs.CodeValidation,
			},
			{
				name:         "unknown business",
				err:          business.ErrBusinessNotFound,
				expectStatus: http.StatusNotFound,
				expectCode:   errs.CodeNotFound,
			},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				s.Equal(tc.expectStatus, rec.Code, rec.Body.String())

				eb := decodeError(&s.Suite, rec.Body.Bytes())
				s.Equal(string(tc.expectCode), eb.Error.Code)
				if tc.expectDetail != nil {
					s.Equal(tc.expectDetail, eb.Detail)
				}
			})
		}
	})

	s.Run("error: unknown failures are hidden behind 500", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection reset by peer")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
		s.NotContains(rec.Body.String(), "connection reset")
	})
}

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().AsGuest().BuildReadModel()
	url := "/reservations/" + view.ID.String()

	s.Run("success: guest lookup forwards guestEmail", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), queries.Viewer{GuestEmail: "jamie@example.com"}, view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?guestEmail=jamie@example.com", nil, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
		s.Equal("2030-01-07T10:00:00Z", response.LocalDateTime)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/nope", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: access denied maps to 403", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).
			Return(nil, queries.ErrReservationAccess).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "not allowed")
	})
}

func (s *ReservationHandlerTestSuite) TestChangeStatus() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/status"

	s.Run("success: passes the caller as actor", func() {
		view := builder.NewReservationBuilder().WithStatus(reservation.StatusCancelled).BuildReadModel()
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), id,
			reqdto.ChangeStatusRequest{Status: "cancelled", Reason: "sick"},
			reservation.NewActor(s.callerID, s.callerRole)).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "cancelled", "reason": "sick"}, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.Status)
	})

	s.Run("error: unknown status is a binding error", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "archived"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: rejected transition carries from/to detail", func() {
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(nil, &reservation.TransitionError{From: reservation.StatusCompleted, To: reservation.StatusPending}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "pending"}, "bearer-token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)

		eb := decodeError(&s.Suite, rec.Body.Bytes())
		s.Equal(string(errs.CodeInvalidTransition), eb.Error.Code)
		s.Equal(map[string]string{"from": "completed", "to": "pending"}, eb.Detail)
	})

	s.Run("error: expired cancellation window maps to 422", func() {
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrCancellationWindowExpired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "cancelled"}, "bearer-token")
		httptest.AssertAppError(s.T(), rec, http.StatusUnprocessableEntity, errs.CodeCancellationWindowExpired)
	})

	s.Run("error: forbidden actor maps to 403", func() {
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "confirmed"}, "bearer-token")
		httptest.AssertAppError(s.T(), rec, http.StatusForbidden, errs.CodeForbidden)
	})
}

func (s *ReservationHandlerTestSuite) TestRecordPayment() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/payment"

	s.Run("success", func() {
		view := builder.NewReservationBuilder().BuildReadModel()
		view.Payment.IsPaid = true
		s.mockCommands.EXPECT().RecordPayment(gomock.Any(), id,
			reqdto.RecordPaymentRequest{Method: "card", TransactionID: "tx-1"}, gomock.Any()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"method": "card", "transaction_id": "tx-1"}, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Payment.IsPaid)
	})

	s.Run("error: already paid", func() {
		s.mockCommands.EXPECT().RecordPayment(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrAlreadyPaid).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"method": "card"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "already paid")
	})
}

func (s *ReservationHandlerTestSuite) TestListMine() {
	s.Run("success: scopes the listing to the caller", func() {
		first := builder.NewReservationBuilder().BuildReadModel()
		next := &queries.Cursor{After: queries.Keyset{At: first.DateTime, ID: first.ID}.Encode()}

		s.mockQueries.EXPECT().ListByClient(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, viewer queries.Viewer, req queries.ListByClientRequest) (*queries.ReservationPage, error) {
				s.Equal(s.callerID, viewer.UserID)
				s.Require().NotNil(req.ClientID)
				s.Equal(s.callerID, *req.ClientID)
				s.Equal(5, req.Limit)
				return &queries.ReservationPage{Items: []*queries.ReservationView{first}, NextCursor: next}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/me?limit=5", nil, "bearer-token")

		var response resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
		s.Equal(next.After, response.NextCursor)
	})
}
