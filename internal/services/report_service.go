package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
)

const activitySheet = "Activity"

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ActivityWorkbook renders the per-user message/notification counts of one
// workspace as an xlsx workbook.
func (s *reportService) ActivityWorkbook(ctx context.Context, workspace models.Workspace) (*excelize.File, error) {
	rows, err := s.repo.Activity().UserActivity(ctx, workspace)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(activitySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"User ID", "Name", "Email", "Role", "Messages Sent", "Notifications", "Unread"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(activitySheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.UserID, row.FullName, row.Email, row.Role,
			row.MessagesSent, row.Notifications, row.UnreadNotifCount,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(activitySheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	s.logger.Info("activity report generated",
		"workspace", string(workspace),
		"rows", len(rows))

	return f, nil
}
