package repositories

import (
	"context"

	"github.com/SAP-F-2025/collaboration-service/internal/models"
)

// MessageRepository persists and queries messages. Records are append-only:
// never mutated, never deleted.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)

	// History queries, newest first, bounded by limit.
	ListByCohort(ctx context.Context, cohortID string, limit int) ([]*models.Message, error)
	ListByTeam(ctx context.Context, teamID string, limit int) ([]*models.Message, error)
	// ListDirect returns the two-party thread between userA and userB.
	ListDirect(ctx context.Context, userA, userB string, limit int) ([]*models.Message, error)
}

// NotificationRepository persists notifications. The only mutation is the
// bulk read-flag flip scoped to one owner.
type NotificationRepository interface {
	// CreateInBatch inserts all records in one round trip.
	CreateInBatch(ctx context.Context, notifications []*models.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkAllRead flips every unread notification owned by userID and
	// returns the number affected. Idempotent.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// UserFilters defines filters for user queries
type UserFilters struct {
	Query     string // Search query for name or email
	Workspace models.Workspace
	Limit     int // Page size
	Offset    int // Offset for pagination
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	// Recipient resolution for fan-out
	ListIDsByWorkspace(ctx context.Context, workspace models.Workspace) ([]string, error)
	ListIDsByCohort(ctx context.Context, cohortID string) ([]string, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	ListByStudent(ctx context.Context, studentID string, limit int) ([]*models.Grade, error)
}

// UserActivityRow is one line of the workspace activity report.
type UserActivityRow struct {
	UserID            string `json:"user_id"`
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	MessagesSent      int64  `json:"messages_sent"`
	Notifications     int64  `json:"notifications"`
	UnreadNotifCount  int64  `json:"unread_notifications"`
}

// ActivityRepository serves the aggregate queries behind reporting.
type ActivityRepository interface {
	UserActivity(ctx context.Context, workspace models.Workspace) ([]UserActivityRow, error)
}
