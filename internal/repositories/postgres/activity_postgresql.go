package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
)

type activityPostgreSQL struct {
	db *gorm.DB
}

func NewActivityPostgreSQL(db *gorm.DB) repositories.ActivityRepository {
	return &activityPostgreSQL{db: db}
}

// UserActivity aggregates per-user message and notification volume for one
// workspace. One query; correlated subselects keep it free of GROUP BY
// interactions between the two counted tables.
func (r *activityPostgreSQL) UserActivity(ctx context.Context, workspace models.Workspace) ([]repositories.UserActivityRow, error) {
	var rows []repositories.UserActivityRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id AS user_id,
			u.full_name,
			u.email,
			u.role,
			(SELECT COUNT(*) FROM messages m WHERE m.sender_id = u.id) AS messages_sent,
			(SELECT COUNT(*) FROM notifications n WHERE n.user_id = u.id) AS notifications,
			(SELECT COUNT(*) FROM notifications n WHERE n.user_id = u.id AND n.read = false) AS unread_notif_count
		FROM users u
		WHERE u.workspace = ? AND u.deleted_at IS NULL
		ORDER BY messages_sent DESC, u.full_name ASC`,
		workspace).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user activity: %w", err)
	}
	return rows, nil
}
