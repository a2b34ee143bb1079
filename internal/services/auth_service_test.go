package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/collaboration-service/internal/auth"
	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/validator"
)

func newAuthServiceForTest(t *testing.T) (AuthService, *mockRepository, *auth.TokenManager) {
	t.Helper()
	repo := newMockRepository()
	tokens := auth.NewTokenManager("test-secret")
	svc := NewAuthService(repo, tokens, testLogger(), validator.New())
	return svc, repo, tokens
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, _, tokens := newAuthServiceForTest(t)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		FullName:  "Alice Nguyen",
		Email:     "Alice@Example.com",
		Password:  "correct-horse",
		Workspace: "educational",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if resp.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", resp.User.Email)
	}
	if resp.User.Role != models.RoleStudent {
		t.Errorf("role = %q, want default student", resp.User.Role)
	}
	if resp.User.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}

	identity, err := tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if identity.UserID != resp.User.ID {
		t.Errorf("token subject = %q, want %q", identity.UserID, resp.User.ID)
	}
	if identity.Workspace != models.WorkspaceEducational {
		t.Errorf("token workspace = %q, want educational", identity.Workspace)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)

	req := &RegisterRequest{
		FullName:  "Alice Nguyen",
		Email:     "alice@example.com",
		Password:  "correct-horse",
		Workspace: "professional",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		FullName:  "Bao Tran",
		Email:     "bao@example.com",
		Password:  "correct-horse",
		Workspace: "professional",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "bao@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token == "" {
		t.Error("Login() returned empty token")
	}

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "bao@example.com",
		Password: "wrong-horse",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterRejectsUnknownWorkspace(t *testing.T) {
	svc, repo, _ := newAuthServiceForTest(t)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		FullName:  "Eve",
		Email:     "eve@example.com",
		Password:  "correct-horse",
		Workspace: "recreational",
	})
	if err == nil {
		t.Fatal("Register() error = nil, want validation error")
	}
	if len(repo.user.users) != 0 {
		t.Error("invalid request created a user")
	}
}
