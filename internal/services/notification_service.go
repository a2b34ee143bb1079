package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/collaboration-service/internal/auth"
	"github.com/SAP-F-2025/collaboration-service/internal/events"
	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/realtime"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
	"github.com/SAP-F-2025/collaboration-service/internal/validator"
)

type notificationService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewNotificationService(repo repositories.Repository, publisher events.Publisher, logger *slog.Logger, validator *validator.Validator) NotificationService {
	return &notificationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Notify persists one notification per target user in a single batched
// insert, then pushes a live event to each user's personal room. Batching
// bounds the cost of workspace-wide announcements.
func (s *notificationService) Notify(ctx context.Context, userIDs []string, req *NotificationRequest) error {
	if errs := s.validator.Validate(req); errs != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, errs)
	}
	if len(userIDs) == 0 {
		return nil
	}

	notifications := make([]*models.Notification, len(userIDs))
	for i, userID := range userIDs {
		notifications[i] = models.NewNotification(userID, req.Title, req.Body, req.Type, req.Link)
	}

	if err := s.repo.Notification().CreateInBatch(ctx, notifications); err != nil {
		return fmt.Errorf("failed to persist notifications: %w", err)
	}

	s.logger.Info("notifications created",
		"count", len(notifications),
		"type", string(req.Type))

	// Live push is best-effort; disconnected users catch up via listing.
	for _, n := range notifications {
		env, err := events.NewEnvelope(events.EventNotification, string(realtime.UserRoom(n.UserID)), n)
		if err != nil {
			s.logger.Error("failed to build notification envelope", "user_id", n.UserID, "error", err)
			continue
		}
		if err := s.publisher.Publish(ctx, env); err != nil {
			s.logger.Error("failed to push notification", "user_id", n.UserID, "error", err)
		}
	}

	return nil
}

// PublishAnnouncement fans an announcement out to its audience: the actor's
// whole workspace, or one educational cohort when CohortID is set. Returns
// the number of notified users.
func (s *notificationService) PublishAnnouncement(ctx context.Context, actor *auth.Identity, req *AnnouncementRequest) (int, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPayload, errs)
	}

	var (
		userIDs []string
		err     error
	)
	if req.CohortID != "" {
		userIDs, err = s.repo.User().ListIDsByCohort(ctx, req.CohortID)
	} else {
		userIDs, err = s.repo.User().ListIDsByWorkspace(ctx, actor.Workspace)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve announcement audience: %w", err)
	}

	notification := &NotificationRequest{
		Title: req.Title,
		Body:  req.Body,
		Type:  models.NotificationAnnouncement,
		Link:  req.Link,
	}
	if err := s.Notify(ctx, userIDs, notification); err != nil {
		return 0, err
	}

	s.logger.Info("announcement published",
		"actor_id", actor.UserID,
		"workspace", string(actor.Workspace),
		"cohort_id", req.CohortID,
		"audience", len(userIDs))

	return len(userIDs), nil
}

func (s *notificationService) List(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.Notification().ListByUser(ctx, userID, limit)
}

// UnreadCount is the badge counter shown next to the notification bell.
func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.Notification().CountUnread(ctx, userID)
}

// MarkAllRead flips every unread notification of the user. Idempotent; a
// second call returns zero.
func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	affected, err := s.repo.Notification().MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	s.logger.Info("notifications marked read", "user_id", userID, "count", affected)
	return affected, nil
}
