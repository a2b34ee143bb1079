package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/collaboration-service/internal/auth"
	"github.com/SAP-F-2025/collaboration-service/internal/events"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
	"github.com/SAP-F-2025/collaboration-service/internal/validator"
)

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db        *gorm.DB
	repo      repositories.Repository
	publisher events.Publisher
	tokens    *auth.TokenManager
	logger    *slog.Logger
	validator *validator.Validator

	// Service instances
	authService         AuthService
	messageService      MessageService
	notificationService NotificationService
	gradeService        GradeService
	reportService       ReportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, publisher events.Publisher, tokens *auth.TokenManager, logger *slog.Logger, validator *validator.Validator) ServiceManager {
	return &serviceManager{
		db:        db,
		repo:      repo,
		publisher: publisher,
		tokens:    tokens,
		logger:    logger,
		validator: validator,
	}
}

// Initialize wires every service instance. Must run before any accessor.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return fmt.Errorf("service manager already initialized")
	}

	sm.authService = NewAuthService(sm.repo, sm.tokens, sm.logger, sm.validator)
	sm.notificationService = NewNotificationService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.messageService = NewMessageService(sm.repo, sm.publisher, sm.notificationService, sm.logger, sm.validator)
	sm.gradeService = NewGradeService(sm.repo, sm.notificationService, sm.logger, sm.validator)
	sm.reportService = NewReportService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("service manager initialized")
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.authService
}

func (sm *serviceManager) Message() MessageService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.messageService
}

func (sm *serviceManager) Notification() NotificationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.notificationService
}

func (sm *serviceManager) Grade() GradeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.gradeService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.reportService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return sm.repo.Ping(ctx)
}

// Shutdown closes the event publisher; repository and database lifecycles
// belong to main.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.shutdown = true

	if err := sm.publisher.Close(); err != nil {
		sm.logger.Error("failed to close event publisher", "error", err)
		return err
	}

	sm.logger.Info("service manager shut down")
	return nil
}
