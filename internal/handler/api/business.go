package api

import (
	"net/http"
	"strconv"

	reqdto "booking-platform/internal/handler/dto/request"
	resdto "booking-platform/internal/handler/dto/response"
	"booking-platform/internal/handler/httperr"
	"booking-platform/internal/handler/middleware"
	"booking-platform/internal/usecase/commands"
	"booking-platform/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BusinessHandler struct {
	cmds         commands.BusinessCommands
	q            queries.BusinessQueries
	reservations queries.ReservationQueries
}

func NewBusinessHandler(cmds commands.BusinessCommands, q queries.BusinessQueries, reservations queries.ReservationQueries) *BusinessHandler {
	return &BusinessHandler{cmds: cmds, q: q, reservations: reservations}
}

// @Summary Create business
// @Description Create a business with weekly hours and an IANA timezone. The caller becomes its owner.
// @Tags businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBusinessRequest true "Create business request"
// @Success 201 {object} resdto.BusinessResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /businesses [post]
func (h *BusinessHandler) Create(c *gin.Context) {
	var req reqdto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), req, middleware.GetActor(c))
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	res, err := resdto.FromBusinessView(view)
	render(c, http.StatusCreated, res, err)
}

// @Summary Get business
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} resdto.BusinessResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /businesses/{id} [get]
func (h *BusinessHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	res, err := resdto.FromBusinessView(view)
	render(c, http.StatusOK, res, err)
}

// @Summary Replace business hours
// @Description Replace the whole weekly schedule. Existing reservations are not re-validated.
// @Tags businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Business ID"
// @Param request body reqdto.ReplaceHoursRequest true "Weekly hours"
// @Success 200 {object} resdto.BusinessResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /businesses/{id}/hours [put]
func (h *BusinessHandler) ReplaceHours(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ReplaceHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	view, err := h.cmds.ReplaceHours(c.Request.Context(), id, req, middleware.GetActor(c))
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	res, err := resdto.FromBusinessView(view)
	render(c, http.StatusOK, res, err)
}

// @Summary Available slots
// @Description Free start times for a service on a local date in the business timezone
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Param serviceId query string true "Service ID"
// @Param date query string true "Local date (YYYY-MM-DD)"
// @Param duration query int false "Duration in minutes (defaults to the service duration)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /businesses/{id}/availability [get]
func (h *BusinessHandler) Availability(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	serviceID, err := uuid.Parse(c.Query("serviceId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid serviceId", nil)
		return
	}
	req := queries.AvailabilityRequest{BusinessID: id, ServiceID: serviceID, Date: c.Query("date")}
	if v := c.Query("duration"); v != "" {
		minutes, convErr := strconv.Atoi(v)
		if convErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, convErr, "Invalid duration", nil)
			return
		}
		req.DurationMinutes = minutes
	}

	view, err := h.q.AvailableSlots(c.Request.Context(), req)
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary List business reservations
// @Description Reservations of a business ordered by start time, with keyset pagination
// @Tags businesses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Business ID"
// @Param from query string false "Range start (RFC3339)"
// @Param to query string false "Range end (RFC3339)"
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Max items (default 20)"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /businesses/{id}/reservations [get]
func (h *BusinessHandler) ListReservations(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	from, ok := queryTime(c, "from")
	if !ok {
		return
	}
	to, ok := queryTime(c, "to")
	if !ok {
		return
	}

	page, err := h.reservations.ListByBusiness(c.Request.Context(), viewerFrom(c), queries.ListByBusinessRequest{
		BusinessID: id,
		From:       from,
		To:         to,
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
