package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/collaboration-service/internal/auth"
	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
	"github.com/SAP-F-2025/collaboration-service/internal/validator"
)

type gradeService struct {
	repo          repositories.Repository
	notifications NotificationService
	logger        *slog.Logger
	validator     *validator.Validator
}

func NewGradeService(repo repositories.Repository, notifications NotificationService, logger *slog.Logger, validator *validator.Validator) GradeService {
	return &gradeService{
		repo:          repo,
		notifications: notifications,
		logger:        logger,
		validator:     validator,
	}
}

// PostGrade records a grade and notifies the affected student. The
// notification is best-effort after the grade is durable.
func (s *gradeService) PostGrade(ctx context.Context, actor *auth.Identity, req *PostGradeRequest) (*models.Grade, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, errs)
	}

	grade := models.NewGrade(req.StudentID, req.Subject, req.Score, req.MaxScore, actor.UserID)
	if err := s.repo.Grade().Create(ctx, grade); err != nil {
		return nil, fmt.Errorf("failed to persist grade: %w", err)
	}

	s.logger.Info("grade posted",
		"grade_id", grade.ID,
		"student_id", grade.StudentID,
		"posted_by", actor.UserID)

	link := "/grades"
	notification := &NotificationRequest{
		Title: fmt.Sprintf("Grade posted: %s", req.Subject),
		Body:  fmt.Sprintf("%s graded %s: %.1f/%.1f", actor.FullName, req.Subject, req.Score, req.MaxScore),
		Type:  models.NotificationGrade,
		Link:  &link,
	}
	if err := s.notifications.Notify(ctx, []string{req.StudentID}, notification); err != nil {
		s.logger.Error("failed to notify student of grade",
			"grade_id", grade.ID,
			"student_id", grade.StudentID,
			"error", err)
	}

	return grade, nil
}

func (s *gradeService) ListByStudent(ctx context.Context, studentID string, limit int) ([]*models.Grade, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.Grade().ListByStudent(ctx, studentID, limit)
}
