package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/collaboration-service/internal/auth"
	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/services"
	"github.com/SAP-F-2025/collaboration-service/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testHandlerLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// stubNotificationService records the last announcement it was asked to publish.
type stubNotificationService struct {
	lastAnnouncement *services.AnnouncementRequest
	calls            int
}

func (s *stubNotificationService) Notify(ctx context.Context, userIDs []string, req *services.NotificationRequest) error {
	return nil
}

func (s *stubNotificationService) PublishAnnouncement(ctx context.Context, actor *auth.Identity, req *services.AnnouncementRequest) (int, error) {
	s.calls++
	s.lastAnnouncement = req
	return 1, nil
}

func (s *stubNotificationService) List(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	return nil, nil
}

func (s *stubNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (s *stubNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func announcementContext(t *testing.T, identity *auth.Identity, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/announcements", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(identityContextKey, identity)
	return c, w
}

func TestPublishCohortAnnouncementRequiresCohortID(t *testing.T) {
	stub := &stubNotificationService{}
	h := NewNotificationHandler(stub, testHandlerLogger())

	identity := &auth.Identity{
		UserID:    "instructor-1",
		Role:      models.RoleInstructor,
		Workspace: models.WorkspaceEducational,
	}
	c, w := announcementContext(t, identity, gin.H{
		"title": "Exam moved",
		"body":  "Now on Thursday",
	})

	h.PublishCohortAnnouncement(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if stub.calls != 0 {
		t.Errorf("announcement published despite missing cohort_id")
	}
}

func TestPublishCohortAnnouncementPassesCohortID(t *testing.T) {
	stub := &stubNotificationService{}
	h := NewNotificationHandler(stub, testHandlerLogger())

	identity := &auth.Identity{
		UserID:    "instructor-1",
		Role:      models.RoleInstructor,
		Workspace: models.WorkspaceEducational,
	}
	c, w := announcementContext(t, identity, gin.H{
		"title":     "Exam moved",
		"body":      "Now on Thursday",
		"cohort_id": "cohort-1",
	})

	h.PublishCohortAnnouncement(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if stub.lastAnnouncement == nil || stub.lastAnnouncement.CohortID != "cohort-1" {
		t.Errorf("published announcement = %+v, want cohort_id cohort-1", stub.lastAnnouncement)
	}
}

func TestPublishWorkspaceAnnouncementDiscardsCohortID(t *testing.T) {
	stub := &stubNotificationService{}
	h := NewNotificationHandler(stub, testHandlerLogger())

	identity := &auth.Identity{
		UserID:    "admin-1",
		Role:      models.RoleOrgAdmin,
		Workspace: models.WorkspaceProfessional,
	}
	c, w := announcementContext(t, identity, gin.H{
		"title":     "Office closed Friday",
		"body":      "Building maintenance",
		"cohort_id": "cohort-1",
	})

	h.PublishWorkspaceAnnouncement(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if stub.lastAnnouncement == nil || stub.lastAnnouncement.CohortID != "" {
		t.Errorf("published announcement = %+v, want empty cohort_id", stub.lastAnnouncement)
	}
}
