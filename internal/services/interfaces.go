package services

import (
	"context"
	"errors"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/collaboration-service/internal/auth"
	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/validator"
)

// ===== ERRORS =====

var (
	// ErrInvalidPayload covers malformed addressing or body on a send
	// request. Detected before any persistence side effect.
	ErrInvalidPayload = errors.New("invalid payload")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type SendMessageRequest = validator.SendMessageRequest
type AnnouncementRequest = validator.AnnouncementRequest
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type PostGradeRequest = validator.PostGradeRequest

// MessageResponse is the persisted message enriched with sender display
// data; this is also the realtime fan-out payload.
type MessageResponse struct {
	*models.Message
	SenderName string `json:"sender_name"`
}

// NotificationRequest describes one notification to deliver to a set of
// users.
type NotificationRequest struct {
	Title string                  `json:"title" validate:"required,min=1,max=255"`
	Body  string                  `json:"body" validate:"required,min=1,max=4000"`
	Type  models.NotificationType `json:"type" validate:"required,notification_type"`
	Link  *string                 `json:"link" validate:"omitempty,max=500"`
}

// HistoryFilter selects one message thread for a history fetch.
type HistoryFilter struct {
	CohortID string
	TeamID   string
	WithUser string // other participant of a direct thread
	Limit    int
}

type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// ===== SERVICE INTERFACES =====

// MessageService is the message dispatcher: validate, persist, fan out.
type MessageService interface {
	Send(ctx context.Context, senderID string, req *SendMessageRequest) (*MessageResponse, error)
	History(ctx context.Context, requesterID string, filter HistoryFilter) ([]*MessageResponse, error)
}

// NotificationService creates notification records and pushes them live.
type NotificationService interface {
	Notify(ctx context.Context, userIDs []string, req *NotificationRequest) error
	PublishAnnouncement(ctx context.Context, actor *auth.Identity, req *AnnouncementRequest) (int, error)
	List(ctx context.Context, userID string, limit int) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// AuthService issues identity tokens on register/login.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)
}

// GradeService records grades and notifies the affected student.
type GradeService interface {
	PostGrade(ctx context.Context, actor *auth.Identity, req *PostGradeRequest) (*models.Grade, error)
	ListByStudent(ctx context.Context, studentID string, limit int) ([]*models.Grade, error)
}

// ReportService renders workspace activity exports.
type ReportService interface {
	ActivityWorkbook(ctx context.Context, workspace models.Workspace) (*excelize.File, error)
}

// ServiceManager provides access to all services
type ServiceManager interface {
	Auth() AuthService
	Message() MessageService
	Notification() NotificationService
	Grade() GradeService
	Report() ReportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
