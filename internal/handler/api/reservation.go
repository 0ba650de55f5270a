package api

import (
	"net/http"
	"strings"

	reqdto "booking-platform/internal/handler/dto/request"
	resdto "booking-platform/internal/handler/dto/response"
	"booking-platform/internal/handler/httperr"
	"booking-platform/internal/handler/middleware"
	"booking-platform/internal/usecase/commands"
	"booking-platform/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerIdempotencyKey     = "Idempotency-Key"
	headerIdempotentReplayed = "Idempotent-Replayed"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Book a slot as the authenticated client or as a guest. An optional idempotency key makes retries safe.
// @Tags reservations
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "UUID identifying this booking attempt"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Success 200 {object} resdto.ReservationResponse "Replayed result for a repeated idempotency key"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	idempotencyKey, ok := idempotencyKeyFrom(c)
	if !ok {
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req, middleware.GetActor(c), idempotencyKey)
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		c.Header(headerIdempotentReplayed, "true")
		status = http.StatusOK
	}
	res, err := resdto.FromReservationView(result.Reservation)
	render(c, status, res, err)
}

func idempotencyKeyFrom(c *gin.Context) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.GetHeader(headerIdempotencyKey))
	if raw == "" {
		return nil, true
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key must be a UUID", nil)
		return nil, false
	}
	return &key, true
}

// @Summary Get reservation
// @Description Visible to the business owner, the registered client and admins. Guests pass the booking email.
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Param guestEmail query string false "Guest email used when booking"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	viewer := viewerFrom(c)
	viewer.GuestEmail = strings.TrimSpace(c.Query("guestEmail"))

	view, err := h.q.GetByID(c.Request.Context(), viewer, id)
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	res, err := resdto.FromReservationView(view)
	render(c, http.StatusOK, res, err)
}

// @Summary Change reservation status
// @Description Confirm, complete, cancel or mark a reservation as no-show
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ChangeStatusRequest true "Status change"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/status [patch]
func (h *ReservationHandler) ChangeStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	view, err := h.cmds.ChangeStatus(c.Request.Context(), id, req, middleware.GetActor(c))
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	res, err := resdto.FromReservationView(view)
	render(c, http.StatusOK, res, err)
}

// @Summary Record payment
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RecordPaymentRequest true "Payment"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/payment [patch]
func (h *ReservationHandler) RecordPayment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	view, err := h.cmds.RecordPayment(c.Request.Context(), id, req, middleware.GetActor(c))
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	res, err := resdto.FromReservationView(view)
	render(c, http.StatusOK, res, err)
}

// @Summary List my reservations
// @Description Reservations of the authenticated client, newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Max items (default 20)"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 401 {object} httperr.Response
// @Router /reservations/me [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	viewer := viewerFrom(c)
	clientID := viewer.UserID
	page, err := h.q.ListByClient(c.Request.Context(), viewer, queries.ListByClientRequest{
		ClientID: &clientID,
		Cursor:   queryCursor(c),
		Limit:    queryLimit(c),
	})
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	res, err := resdto.FromReservationPage(page)
	render(c, http.StatusOK, res, err)
}

// @Summary List guest reservations
// @Description Admin lookup of guest bookings by email, newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param guestEmail query string true "Guest email"
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Max items (default 20)"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListByGuestEmail(c *gin.Context) {
	page, err := h.q.ListByClient(c.Request.Context(), viewerFrom(c), queries.ListByClientRequest{
		GuestEmail: strings.TrimSpace(c.Query("guestEmail")),
		Cursor:     queryCursor(c),
		Limit:      queryLimit(c),
	})
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	res, err := resdto.FromReservationPage(page)
	render(c, http.StatusOK, res, err)
}
