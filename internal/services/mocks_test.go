package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	message      *mockMessageRepo
	notification *mockNotificationRepo
	user         *mockUserRepo
	grade        *mockGradeRepo
	activity     *mockActivityRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		message:      &mockMessageRepo{},
		notification: &mockNotificationRepo{},
		user:         &mockUserRepo{users: make(map[string]*models.User)},
		grade:        &mockGradeRepo{},
		activity:     &mockActivityRepo{},
	}
}

func (m *mockRepository) Message() repositories.MessageRepository           { return m.message }
func (m *mockRepository) Notification() repositories.NotificationRepository { return m.notification }
func (m *mockRepository) User() repositories.UserRepository                 { return m.user }
func (m *mockRepository) Grade() repositories.GradeRepository               { return m.grade }
func (m *mockRepository) Activity() repositories.ActivityRepository         { return m.activity }
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

type mockMessageRepo struct {
	mu         sync.Mutex
	created    []*models.Message
	failCreate bool
}

func (r *mockMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	if r.failCreate {
		return fmt.Errorf("storage unavailable")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, msg)
	return nil
}

func (r *mockMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.created {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockMessageRepo) ListByCohort(ctx context.Context, cohortID string, limit int) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Message
	for _, m := range r.created {
		if m.CohortID != nil && *m.CohortID == cohortID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *mockMessageRepo) ListByTeam(ctx context.Context, teamID string, limit int) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Message
	for _, m := range r.created {
		if m.TeamID != nil && *m.TeamID == teamID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *mockMessageRepo) ListDirect(ctx context.Context, userA, userB string, limit int) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Message
	for _, m := range r.created {
		if m.RecipientID == nil {
			continue
		}
		if (m.SenderID == userA && *m.RecipientID == userB) ||
			(m.SenderID == userB && *m.RecipientID == userA) {
			out = append(out, m)
		}
	}
	return out, nil
}

type mockNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
	batchCalls    int
}

func (r *mockNotificationRepo) CreateInBatch(ctx context.Context, notifications []*models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batchCalls++
	r.notifications = append(r.notifications, notifications...)
	return nil
}

func (r *mockNotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *mockNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *mockNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var affected int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			affected++
		}
	}
	return affected, nil
}

type mockUserRepo struct {
	mu           sync.Mutex
	users        map[string]*models.User
	workspaceIDs map[models.Workspace][]string
	cohortIDs    map[string][]string
}

func (r *mockUserRepo) add(u *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	r.add(user)
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockUserRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *mockUserRepo) ListIDsByWorkspace(ctx context.Context, workspace models.Workspace) ([]string, error) {
	return r.workspaceIDs[workspace], nil
}

func (r *mockUserRepo) ListIDsByCohort(ctx context.Context, cohortID string) ([]string, error) {
	return r.cohortIDs[cohortID], nil
}

func (r *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

type mockGradeRepo struct {
	mu     sync.Mutex
	grades []*models.Grade
}

func (r *mockGradeRepo) Create(ctx context.Context, grade *models.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grades = append(r.grades, grade)
	return nil
}

func (r *mockGradeRepo) ListByStudent(ctx context.Context, studentID string, limit int) ([]*models.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Grade
	for _, g := range r.grades {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out, nil
}

type mockActivityRepo struct {
	rows []repositories.UserActivityRow
}

func (r *mockActivityRepo) UserActivity(ctx context.Context, workspace models.Workspace) ([]repositories.UserActivityRow, error) {
	return r.rows, nil
}
