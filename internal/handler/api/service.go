package api

import (
	"net/http"

	reqdto "booking-platform/internal/handler/dto/request"
	resdto "booking-platform/internal/handler/dto/response"
	"booking-platform/internal/handler/httperr"
	"booking-platform/internal/handler/middleware"
	"booking-platform/internal/usecase/commands"
	"booking-platform/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	cmds commands.ServiceCommands
	q    queries.ServiceQueries
}

func NewServiceHandler(cmds commands.ServiceCommands, q queries.ServiceQueries) *ServiceHandler {
	return &ServiceHandler{cmds: cmds, q: q}
}

// @Summary Create service
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Business ID"
// @Param request body reqdto.CreateServiceRequest true "Create service request"
// @Success 201 {object} resdto.ServiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /businesses/{id}/services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	businessID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), businessID, req, middleware.GetActor(c))
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	res, err := resdto.FromServiceView(view)
	render(c, http.StatusCreated, res, err)
}

// @Summary List public services
// @Tags services
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {array} resdto.ServiceResponse
// @Failure 404 {object} httperr.Response
// @Router /businesses/{id}/services [get]
func (h *ServiceHandler) ListPublic(c *gin.Context) {
	businessID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	items, err := h.q.ListPublic(c.Request.Context(), businessID)
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	res, err := resdto.FromServiceList(items)
	render(c, http.StatusOK, res, err)
}

// @Summary Delete service
// @Description Soft-deletes while pending or confirmed reservations reference the service, otherwise removes it
// @Tags services
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.DeleteServiceResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	result, err := h.cmds.Delete(c.Request.Context(), id, middleware.GetActor(c))
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDeleteServiceResult(result))
}
