package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
)

type gradePostgreSQL struct {
	db *gorm.DB
}

func NewGradePostgreSQL(db *gorm.DB) repositories.GradeRepository {
	return &gradePostgreSQL{db: db}
}

func (r *gradePostgreSQL) Create(ctx context.Context, grade *models.Grade) error {
	if err := r.db.WithContext(ctx).Create(grade).Error; err != nil {
		return fmt.Errorf("failed to create grade: %w", err)
	}
	return nil
}

func (r *gradePostgreSQL) ListByStudent(ctx context.Context, studentID string, limit int) ([]*models.Grade, error) {
	var grades []*models.Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&grades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}
	return grades, nil
}
