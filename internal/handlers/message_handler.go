package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/collaboration-service/internal/services"
	"github.com/SAP-F-2025/collaboration-service/internal/utils"
)

type MessageHandler struct {
	BaseHandler
	service services.MessageService
}

func NewMessageHandler(service services.MessageService, logger utils.Logger) *MessageHandler {
	return &MessageHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SendMessage dispatches a message to a cohort, team or direct recipient.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", err)
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.LogRequest(c, "Sending message", "sender_id", userID)

	resp, err := h.service.Send(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetHistory fetches one thread: ?cohort_id= | ?team_id= | ?user_id=, with
// an optional limit.
func (h *MessageHandler) GetHistory(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter := services.HistoryFilter{
		CohortID: c.Query("cohort_id"),
		TeamID:   c.Query("team_id"),
		WithUser: c.Query("user_id"),
		Limit:    limit,
	}

	h.LogRequest(c, "Fetching message history", "user_id", userID)

	messages, err := h.service.History(c.Request.Context(), userID, filter)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"count":    len(messages),
	})
}
