package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/collaboration-service/internal/auth"
	"github.com/SAP-F-2025/collaboration-service/internal/authz"
	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/realtime"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
	"github.com/SAP-F-2025/collaboration-service/internal/services"
	"github.com/SAP-F-2025/collaboration-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	messageHandler      *MessageHandler
	notificationHandler *NotificationHandler
	gradeHandler        *GradeHandler
	reportHandler       *ReportHandler
	userHandler         *UserHandler
	wsHandler           *WSHandler
	authMiddleware      *TokenAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	registry *realtime.Registry,
	userRepo repositories.UserRepository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		messageHandler:      NewMessageHandler(serviceManager.Message(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		gradeHandler:        NewGradeHandler(serviceManager.Grade(), logger),
		reportHandler:       NewReportHandler(serviceManager.Report(), logger),
		userHandler:         NewUserHandler(userRepo, logger),
		wsHandler:           NewWSHandler(tokens, registry, logger),
		authMiddleware:      NewTokenAuthMiddleware(tokens, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Token issuance (no auth)
	authRoutes := router.Group("/api/v1/auth")
	{
		authRoutes.POST("/register", hm.authHandler.Register)
		authRoutes.POST("/login", hm.authHandler.Login)
	}

	// Realtime endpoint authenticates via query token inside the handler
	router.GET("/ws", hm.wsHandler.Handle)

	// API v1 routes with authentication
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Messaging - any authenticated user
		messages := v1.Group("/messages")
		{
			messages.POST("", hm.messageHandler.SendMessage)
			messages.GET("", hm.messageHandler.GetHistory)
		}

		// Notifications - owner-scoped
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.POST("/read-all", hm.notificationHandler.MarkAllRead)
		}

		// Announcements - workspace-restricted gates; the workspace check
		// runs before the admin bypass, so even an admin from the other
		// workspace is rejected here.
		announcements := v1.Group("/announcements")
		{
			announcements.POST("/workspace",
				hm.authMiddleware.RequirePolicy(authz.Policy{
					Workspace: models.WorkspaceProfessional,
					MinRole:   models.RoleOrgAdmin,
				}),
				hm.notificationHandler.PublishWorkspaceAnnouncement)
			announcements.POST("/cohort",
				hm.authMiddleware.RequirePolicy(authz.Policy{
					Workspace: models.WorkspaceEducational,
					MinRole:   models.RoleInstructor,
				}),
				hm.notificationHandler.PublishCohortAnnouncement)
		}

		// Grades - posting is educational staff only, reading is self-scoped
		grades := v1.Group("/grades")
		{
			grades.POST("",
				hm.authMiddleware.RequirePolicy(authz.Policy{
					Workspace: models.WorkspaceEducational,
					MinRole:   models.RoleInstructor,
				}),
				hm.gradeHandler.PostGrade)
			grades.GET("/me", hm.gradeHandler.ListMyGrades)
		}

		// User directory for composing messages
		v1.GET("/users", hm.userHandler.ListUsers)

		// Reports - superuser only
		v1.GET("/reports/activity",
			hm.authMiddleware.RequirePolicy(authz.Policy{
				AllowedRoles: []models.UserRole{models.RoleAdmin},
			}),
			hm.reportHandler.ActivityReport)
	}
}
