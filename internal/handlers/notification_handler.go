package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/collaboration-service/internal/services"
	"github.com/SAP-F-2025/collaboration-service/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	service services.NotificationService
}

func NewNotificationHandler(service services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListNotifications returns the caller's notifications, unread first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.service.List(c.Request.Context(), userID, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	unread, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
		"unread":        unread,
	})
}

// MarkAllRead flips every unread notification of the caller.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", err)
		return
	}

	h.LogRequest(c, "Marking notifications read", "user_id", userID)

	affected, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked_read": affected})
}

// PublishWorkspaceAnnouncement broadcasts to the caller's whole workspace.
// Any cohort_id in the body is discarded; cohort targeting has its own route
// with its own gate.
func (h *NotificationHandler) PublishWorkspaceAnnouncement(c *gin.Context) {
	var req services.AnnouncementRequest
	if !h.bindAnnouncement(c, &req) {
		return
	}
	req.CohortID = ""

	h.publishAnnouncement(c, &req)
}

// PublishCohortAnnouncement broadcasts to one educational cohort. cohort_id
// is mandatory here so an instructor can never reach the workspace-wide
// audience.
func (h *NotificationHandler) PublishCohortAnnouncement(c *gin.Context) {
	var req services.AnnouncementRequest
	if !h.bindAnnouncement(c, &req) {
		return
	}
	if req.CohortID == "" {
		h.RespondWithError(c, http.StatusBadRequest, "cohort_id is required", nil)
		return
	}

	h.publishAnnouncement(c, &req)
}

func (h *NotificationHandler) bindAnnouncement(c *gin.Context, req *services.AnnouncementRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

func (h *NotificationHandler) publishAnnouncement(c *gin.Context, req *services.AnnouncementRequest) {
	identity, err := GetIdentityFromContext(c)
	if err != nil {
		h.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", err)
		return
	}

	h.LogRequest(c, "Publishing announcement",
		"actor_id", identity.UserID,
		"workspace", string(identity.Workspace),
		"cohort_id", req.CohortID)

	notified, err := h.service.PublishAnnouncement(c.Request.Context(), identity, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notified": notified})
}
