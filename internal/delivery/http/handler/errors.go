package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrFounderNotFound, http.StatusNotFound},
	{domain.ErrStartupNotFound, http.StatusNotFound},
	{domain.ErrMentorNotFound, http.StatusNotFound},
	{domain.ErrRequestNotFound, http.StatusNotFound},
	{domain.ErrRequestNotPending, http.StatusConflict},
	{domain.ErrDuplicateRequest, http.StatusConflict},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrInvalidStatus, http.StatusBadRequest},
	{domain.ErrCannotRequestSelf, http.StatusBadRequest},
}

// respondError maps domain errors to status codes. Anything unknown is a
// persistence or infrastructure failure and is reported opaquely.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			c.JSON(e.status, ErrorResponse{Error: e.err.Error()})
			return
		}
	}

	logger.Error(fallback,
		slog.String("path", c.FullPath()),
		slog.Any("error", err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
}
