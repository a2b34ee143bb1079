package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/collaboration-service/internal/events"
	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/realtime"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
	"github.com/SAP-F-2025/collaboration-service/internal/validator"
)

type messageService struct {
	repo          repositories.Repository
	publisher     events.Publisher
	notifications NotificationService
	logger        *slog.Logger
	validator     *validator.Validator
}

func NewMessageService(repo repositories.Repository, publisher events.Publisher, notifications NotificationService, logger *slog.Logger, validator *validator.Validator) MessageService {
	return &messageService{
		repo:          repo,
		publisher:     publisher,
		notifications: notifications,
		logger:        logger,
		validator:     validator,
	}
}

// Send validates, persists, then fans out. Validation failures happen before
// any write; fan-out failures never fail the committed write.
func (s *messageService) Send(ctx context.Context, senderID string, req *SendMessageRequest) (*MessageResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, errs)
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: body must not be blank", ErrInvalidPayload)
	}

	addr, err := models.ParseAddress(req.CohortID, req.TeamID, req.ToUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	msg := models.NewMessage(senderID, addr, req.Body)
	if err := s.repo.Message().Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	response := &MessageResponse{
		Message:    msg,
		SenderName: s.senderName(ctx, senderID),
	}

	s.logger.Info("message dispatched",
		"message_id", msg.ID,
		"sender_id", senderID,
		"kind", string(addr.Kind),
		"target_id", addr.ID)

	s.fanOut(ctx, addr, senderID, response)

	if addr.Kind == models.AddressDirect && addr.ID != senderID {
		s.notifyRecipient(ctx, addr.ID, response)
	}

	return response, nil
}

// notifyRecipient records an unread notification for a direct message so the
// recipient catches up even if no session was connected. Best-effort after
// the durable write.
func (s *messageService) notifyRecipient(ctx context.Context, recipientID string, msg *MessageResponse) {
	title := "New message"
	if msg.SenderName != "" {
		title = fmt.Sprintf("New message from %s", msg.SenderName)
	}

	link := fmt.Sprintf("/messages?user_id=%s", msg.SenderID)
	notification := &NotificationRequest{
		Title: title,
		Body:  truncate(msg.Body, 140),
		Type:  models.NotificationMessage,
		Link:  &link,
	}
	if err := s.notifications.Notify(ctx, []string{recipientID}, notification); err != nil {
		s.logger.Error("failed to notify message recipient",
			"message_id", msg.ID,
			"recipient_id", recipientID,
			"error", err)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// fanOut publishes the realtime event(s) for a persisted message. Direct
// messages additionally echo to the sender's personal room so their other
// sessions see the outgoing message live.
func (s *messageService) fanOut(ctx context.Context, addr models.Address, senderID string, payload *MessageResponse) {
	event := eventForKind(addr.Kind)

	s.publish(ctx, event, addr.RoomKey(), payload)

	if addr.Kind == models.AddressDirect && addr.ID != senderID {
		s.publish(ctx, event, string(realtime.UserRoom(senderID)), payload)
	}
}

func (s *messageService) publish(ctx context.Context, event, room string, payload any) {
	env, err := events.NewEnvelope(event, room, payload)
	if err != nil {
		s.logger.Error("failed to build realtime envelope", "room", room, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, env); err != nil {
		// Best-effort delivery: the message is already durable.
		s.logger.Error("failed to publish realtime event", "room", room, "error", err)
	}
}

func eventForKind(kind models.AddressKind) string {
	switch kind {
	case models.AddressCohort:
		return events.EventCohortMessage
	case models.AddressTeam:
		return events.EventTeamMessage
	default:
		return events.EventDirectMessage
	}
}

func (s *messageService) senderName(ctx context.Context, senderID string) string {
	sender, err := s.repo.User().GetByID(ctx, senderID)
	if err != nil {
		s.logger.Warn("failed to resolve sender for enrichment",
			"sender_id", senderID,
			"error", err)
		return ""
	}
	return sender.FullName
}

// History fetches one thread, newest first. This is the reconnect path:
// anything fan-out skipped while a client was offline is recovered here.
func (s *messageService) History(ctx context.Context, requesterID string, filter HistoryFilter) ([]*MessageResponse, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var (
		msgs []*models.Message
		err  error
	)
	switch {
	case filter.CohortID != "":
		msgs, err = s.repo.Message().ListByCohort(ctx, filter.CohortID, limit)
	case filter.TeamID != "":
		msgs, err = s.repo.Message().ListByTeam(ctx, filter.TeamID, limit)
	case filter.WithUser != "":
		msgs, err = s.repo.Message().ListDirect(ctx, requesterID, filter.WithUser, limit)
	default:
		return nil, fmt.Errorf("%w: one of cohort_id, team_id or user_id is required", ErrInvalidPayload)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}

	return s.enrich(ctx, msgs), nil
}

// enrich resolves sender display names in one batched lookup.
func (s *messageService) enrich(ctx context.Context, msgs []*models.Message) []*MessageResponse {
	senderIDs := make([]string, 0, len(msgs))
	seen := make(map[string]struct{}, len(msgs))
	for _, m := range msgs {
		if _, ok := seen[m.SenderID]; !ok {
			seen[m.SenderID] = struct{}{}
			senderIDs = append(senderIDs, m.SenderID)
		}
	}

	names := make(map[string]string, len(senderIDs))
	senders, err := s.repo.User().GetByIDs(ctx, senderIDs)
	if err != nil {
		s.logger.Warn("failed to resolve senders for history", "error", err)
	} else {
		for _, u := range senders {
			names[u.ID] = u.FullName
		}
	}

	responses := make([]*MessageResponse, len(msgs))
	for i, m := range msgs {
		responses[i] = &MessageResponse{Message: m, SenderName: names[m.SenderID]}
	}
	return responses
}
