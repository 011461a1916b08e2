package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/shared"
	"github.com/gin-gonic/gin"
)

var errBadRequestBody = errors.New("invalid request body")

// statusFor maps a domain error to an HTTP status and the message sent to
// the caller. Unknown errors are reported as a bare internal error.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequestBody),
		errors.Is(err, shared.ErrorEmptyNoteText),
		errors.Is(err, shared.ErrorNoteTooLong),
		errors.Is(err, shared.ErrorJobIDRequired),
		errors.Is(err, shared.ErrorFileNameMissing),
		errors.Is(err, shared.ErrorInvalidLoginFormat),
		errors.Is(err, shared.ErrorInvalidPasswordFormat):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, shared.ErrorLoginAlreadyExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, shared.ErrorInvalidLoginPassword),
		errors.Is(err, shared.ErrorInvalidAuthheaderFormat),
		errors.Is(err, shared.ErrorNoUserID),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not found"
	default:
		return http.StatusInternalServerError, common.ErrorInternal.Error()
	}
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	code, msg := statusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, shared.ErrorResponse{Error: msg})
}
