package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/store"
	"github.com/gin-gonic/gin"
)

// errorStatus maps a core error to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, CodeValidation
	case errors.Is(err, domain.ErrLookup):
		return http.StatusUnprocessableEntity, CodeLookup
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, CodeUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// respondError writes err as an ErrorResponse. Internal errors are logged
// and their message is not exposed.
func (s *Server) respondError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		resp.Error = "internal server error"
	}
	c.JSON(status, resp)
}

func badRequest(c *gin.Context, msg string, err error) {
	resp := ErrorResponse{Error: msg, Code: CodeBadRequest}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
