package models

import (
	"time"

	"github.com/google/uuid"
)

// Grade is the minimal record the notification hook needs; gradebook UI and
// aggregation live outside this service.
type Grade struct {
	ID        string  `json:"id" gorm:"primaryKey;size:36"`
	StudentID string  `json:"student_id" gorm:"not null;size:255;index"`
	Subject   string  `json:"subject" gorm:"not null;size:255"`
	Score     float64 `json:"score" gorm:"not null"`
	MaxScore  float64 `json:"max_score" gorm:"not null"`
	PostedBy  string  `json:"posted_by" gorm:"not null;size:255"`

	CreatedAt time.Time `json:"created_at"`
}

func (Grade) TableName() string {
	return "grades"
}

func NewGrade(studentID, subject string, score, maxScore float64, postedBy string) *Grade {
	return &Grade{
		ID:        uuid.New().String(),
		StudentID: studentID,
		Subject:   subject,
		Score:     score,
		MaxScore:  maxScore,
		PostedBy:  postedBy,
	}
}
