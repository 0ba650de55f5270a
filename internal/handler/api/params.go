package api

import (
	"net/http"
	"strconv"
	"time"

	"booking-platform/internal/handler/httperr"
	"booking-platform/internal/handler/middleware"
	"booking-platform/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// render writes body with status unless mapping it failed.
func render(c *gin.Context, status int, body any, err error) {
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}
	c.JSON(status, body)
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// queryTime parses an optional RFC3339 query parameter.
func queryTime(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name+": expected RFC3339", nil)
		return nil, false
	}
	return &t, true
}

func queryLimit(c *gin.Context) int {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			limit = iv
		}
	}
	return queries.ClampLimit(limit)
}

func queryCursor(c *gin.Context) *queries.Cursor {
	if after := c.Query("cursor"); after != "" {
		return &queries.Cursor{After: after}
	}
	return nil
}

func viewerFrom(c *gin.Context) queries.Viewer {
	actor := middleware.GetActor(c)
	return queries.Viewer{UserID: actor.ID(), Role: actor.Role()}
}
