package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/collaboration-service/internal/cache"
	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
)

// notificationBatchSize bounds a single INSERT for workspace-wide announcements.
const notificationBatchSize = 500

// unreadCountTTL caches the badge counter; every write path invalidates it.
const unreadCountTTL = time.Minute

type notificationPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewNotificationPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.NotificationRepository {
	return &notificationPostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *notificationPostgreSQL) CreateInBatch(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(notifications, notificationBatchSize).Error; err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	for _, n := range notifications {
		cache.SafeDelete(ctx, r.cacheManager.Notification, unreadCountKey(n.UserID))
	}
	return nil
}

func (r *notificationPostgreSQL) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("read ASC, created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationPostgreSQL) CountUnread(ctx context.Context, userID string) (int64, error) {
	var cached int64
	if err := r.cacheManager.Notification.Get(ctx, unreadCountKey(userID), &cached); err == nil {
		return cached, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	_ = r.cacheManager.Notification.Set(ctx, unreadCountKey(userID), count, unreadCountTTL)
	return count, nil
}

func (r *notificationPostgreSQL) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}

	cache.SafeInvalidatePattern(ctx, r.cacheManager.Notification, fmt.Sprintf("unread:%s*", userID))
	return result.RowsAffected, nil
}

func unreadCountKey(userID string) string {
	return fmt.Sprintf("unread:%s", userID)
}
