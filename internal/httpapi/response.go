package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/engine"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
)

// APIError is the wire shape of one error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope wraps every non-2xx response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Code: code, Message: msg}})
}

// respondFailure maps engine and store errors onto HTTP statuses. Conflicts
// stay retryable for the caller; anything unrecognized is a 500 with the
// detail kept out of the response body.
func (h *Handler) respondFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrValidation):
		respondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, store.ErrConflict):
		respondError(c, http.StatusConflict, "conflict", err)
	default:
		h.log.Error("request failed", "path", c.FullPath(), "err", err)
		respondError(c, http.StatusInternalServerError, "internal", nil)
	}
}
