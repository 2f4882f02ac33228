package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "internal server error"

// StatusFor maps an application error to its HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError aborts the request with the status matching err.
// Unclassified errors are logged and hidden behind a generic message.
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error(ctx.Request.Method, " ", ctx.Request.URL.Path, ": ", err)
		message = internalErrorMessage
	}
	ctx.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

func respondBadRequest(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// bindOptionalJSON binds a JSON body into obj, leaving obj untouched when the
// body is empty. It responds with 400 and returns false on a malformed body.
func bindOptionalJSON(ctx *gin.Context, obj any) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(ctx, "invalid request body")
		return false
	}
	return true
}
