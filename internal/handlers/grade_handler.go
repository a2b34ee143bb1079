package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/collaboration-service/internal/services"
	"github.com/SAP-F-2025/collaboration-service/internal/utils"
)

type GradeHandler struct {
	BaseHandler
	service services.GradeService
}

func NewGradeHandler(service services.GradeService, logger utils.Logger) *GradeHandler {
	return &GradeHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// PostGrade records a grade and triggers the student notification.
func (h *GradeHandler) PostGrade(c *gin.Context) {
	identity, err := GetIdentityFromContext(c)
	if err != nil {
		h.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", err)
		return
	}

	var req services.PostGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.LogRequest(c, "Posting grade", "student_id", req.StudentID)

	grade, err := h.service.PostGrade(c.Request.Context(), identity, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, grade)
}

// ListMyGrades returns the caller's own grades.
func (h *GradeHandler) ListMyGrades(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	grades, err := h.service.ListByStudent(c.Request.Context(), userID, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"grades": grades,
		"count":  len(grades),
	})
}
