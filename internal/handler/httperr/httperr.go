package httperr

import (
	"log/slog"
	"net/http"

	"booking-platform/internal/pkg/errs"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    errs.Code `json:"code"`
		Message string    `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = codeForStatus(status)
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithAppError derives status and code from the error category.
// Errors outside the known categories are logged with their stack and hidden.
func AbortWithAppError(c *gin.Context, err error) {
	if err == nil {
		panic("AbortWithAppError: err cannot be nil")
	}

	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("unhandled application error",
			"error", err.Error(),
			"path", c.FullPath(),
			"stack", errs.ExtractStackLines(err, 8),
		)
		resp := Response{Status: status}
		resp.Error.Code = errs.CodeInternal
		resp.Error.Message = "Internal server error"
		_ = c.Error(gin.Error{Err: err, Type: gin.ErrorTypePrivate, Meta: resp})
		c.AbortWithStatusJSON(status, resp)
		return
	}

	resp := Response{Status: status}
	resp.Error.Code = errs.CodeOf(err)
	resp.Error.Message = publicMessage(err)
	resp.Detail = detailOf(err)

	_ = c.Error(gin.Error{Err: err, Type: gin.ErrorTypePublic, Meta: resp})
	c.AbortWithStatusJSON(status, resp)
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrBusinessRule):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Detailer is implemented by errors that carry structured, client-safe detail.
type Detailer interface {
	Detail() any
}

func detailOf(err error) any {
	var d Detailer
	if errors.As(err, &d) {
		return d.Detail()
	}
	return nil
}

// publicMessage prefers the message of the coded sentinel over wrapped context.
func publicMessage(err error) string {
	var coded *errs.Error
	if errors.As(err, &coded) {
		return coded.Error()
	}
	return errors.UnwrapAll(err).Error()
}

func codeForStatus(status int) errs.Code {
	switch status {
	case http.StatusBadRequest:
		return errs.CodeValidation
	case http.StatusUnauthorized:
		return errs.CodeUnauthorized
	case http.StatusNotFound:
		return errs.CodeNotFound
	case http.StatusConflict:
		return errs.CodeDuplicate
	case http.StatusForbidden:
		return errs.CodeForbidden
	case http.StatusUnprocessableEntity:
		return errs.CodeBusinessRule
	default:
		return errs.CodeInternal
	}
}
