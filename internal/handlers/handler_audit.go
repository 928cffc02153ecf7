package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// auditHandler exposes the audit trail and session lookups.
type auditHandler struct {
	auditService   portssvc.AuditTrailSvc
	sessionService portssvc.SessionSvcFacade
}

func newAuditHandler(auditService portssvc.AuditTrailSvc, sessionService portssvc.SessionSvcFacade) *auditHandler {
	return &auditHandler{auditService: auditService, sessionService: sessionService}
}

// registerAuditRoutes registers the audit trail and session routes.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditTrailSvc, sessionService portssvc.SessionSvcFacade) {
	h := newAuditHandler(auditService, sessionService)

	rg.GET("/audit/:entityType/:entityID", h.listByEntity)

	sessions := rg.Group("/sessions")
	{
		sessions.GET("", h.listSessions)
		sessions.GET("/:sessionID", h.getSession)
	}
}

func (h *auditHandler) listByEntity(c *gin.Context) {
	entityType := c.Param("entityType")
	entityID, ok := pathID(c, "entityID")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.auditService.ListByEntity(c.Request.Context(), entityType, entityID, limit)
	if err != nil {
		respondError(c, err, "failed to list audit records")
		return
	}
	respondOK(c, http.StatusOK, "audit records listed", records)
}

func (h *auditHandler) listSessions(c *gin.Context) {
	sessions, err := h.sessionService.ListSessions(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list sessions")
		return
	}
	respondOK(c, http.StatusOK, "sessions listed", sessions)
}

func (h *auditHandler) getSession(c *gin.Context) {
	sessionID, ok := pathID(c, "sessionID")
	if !ok {
		return
	}
	session, err := h.sessionService.GetSessionByID(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err, "failed to get session")
		return
	}
	respondOK(c, http.StatusOK, "session retrieved", session)
}
