package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationMessage      NotificationType = "message"
	NotificationAnnouncement NotificationType = "announcement"
	NotificationGrade        NotificationType = "grade"
	NotificationAssignment   NotificationType = "assignment"
)

type Notification struct {
	ID     string           `json:"id" gorm:"primaryKey;size:36"`
	UserID string           `json:"user_id" gorm:"not null;size:255;index:idx_notifications_user_read,priority:1"`
	Title  string           `json:"title" gorm:"not null;size:255"`
	Body   string           `json:"body" gorm:"type:text;not null"`
	Type   NotificationType `json:"type" gorm:"not null;size:32"`

	// Optional deep link into the consuming UI plus free-form context.
	Link     *string        `json:"link,omitempty" gorm:"size:500"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	Read bool `json:"read" gorm:"not null;default:false;index:idx_notifications_user_read,priority:2"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NewNotification builds an unread notification owned by userID.
func NewNotification(userID, title, body string, typ NotificationType, link *string) *Notification {
	return &Notification{
		ID:     uuid.New().String(),
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   typ,
		Link:   link,
	}
}
