package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/services"
	"github.com/SAP-F-2025/collaboration-service/internal/utils"
)

type ReportHandler struct {
	BaseHandler
	service services.ReportService
}

func NewReportHandler(service services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ActivityReport streams the workspace activity workbook as an xlsx
// download. Admin-only via route policy.
func (h *ReportHandler) ActivityReport(c *gin.Context) {
	workspace := models.Workspace(c.DefaultQuery("workspace", string(models.WorkspaceEducational)))
	if !workspace.Valid() {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid workspace", nil)
		return
	}

	h.LogRequest(c, "Generating activity report", "workspace", string(workspace))

	workbook, err := h.service.ActivityWorkbook(c.Request.Context(), workspace)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("activity-%s-%s.xlsx", workspace, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream report")
	}
}
