package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/dto"
	"github.com/agritrack/plot_capacity_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"log/slog"
)

// respondOK writes a success envelope.
func respondOK(c *gin.Context, httpStatus int, message string, data any) {
	c.JSON(httpStatus, dto.OK(message, data))
}

// respondPage writes a success envelope with pagination metadata.
func respondPage(c *gin.Context, message string, data any, nextToken *string) {
	c.JSON(http.StatusOK, dto.OKWithMeta(message, data, dto.PageMeta{NextToken: nextToken}))
}

// respondError maps the error taxonomy onto HTTP codes and writes a failure
// envelope. Clients branch on the envelope's status flag; the HTTP code is
// informative. Internal causes are logged, not leaked.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.Fail("validation failed", gin.H{"error": err.Error()}))
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Fail("resource not found", gin.H{"error": err.Error()}))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.Fail("conflict with existing state", gin.H{"error": err.Error()}))
	case errors.Is(err, apperrors.ErrPreconditionFailed):
		c.JSON(http.StatusPreconditionFailed, dto.Fail("precondition failed", gin.H{"error": err.Error()}))
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail(fallback, nil))
	}
}

// respondBindError writes a failure envelope for a request binding error.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.Fail("invalid request format", gin.H{"error": err.Error()}))
}

// actorID resolves the authenticated actor or aborts with an unauthorized
// failure envelope.
func actorID(c *gin.Context) (string, bool) {
	actor, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Fail("unauthorized", nil))
	}
	return actor, ok
}

// pathID parses an int64 path parameter or aborts with a failure envelope.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid "+name, gin.H{"error": name + " must be a positive integer"}))
		return 0, false
	}
	return id, true
}
