package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-registration/internal/core/domain"
)

type stubUserService struct {
	createFn func(ctx context.Context, username, password, role string, defaultPasswordChanged bool) (*domain.User, error)
	loginFn  func(ctx context.Context, username, password string) (string, *domain.User, error)
	changeFn func(ctx context.Context, username, currentPassword, newPassword string) (*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUserService) CreateUser(ctx context.Context, username, password, role string, defaultPasswordChanged bool) (*domain.User, error) {
	return s.createFn(ctx, username, password, role, defaultPasswordChanged)
}

func (s *stubUserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubUserService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) (*domain.User, error) {
	return s.changeFn(ctx, username, currentPassword, newPassword)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "alice" || password != "pw" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "tok", &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser, DefaultPasswordChanged: false}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
	if resp["password_change_required"] != true {
		t.Fatalf("expected password_change_required for default password")
	}

	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash leaked into response")
	}
	if _, leaked := user["PasswordHash"]; leaked {
		t.Fatalf("password hash leaked into response")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubUserService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_ChangePassword_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		changeFn: func(ctx context.Context, username, currentPassword, newPassword string) (*domain.User, error) {
			if username != "alice" || currentPassword != "old" || newPassword != "newpass" {
				t.Fatalf("unexpected args: %s %s %s", username, currentPassword, newPassword)
			}
			return &domain.User{ID: "u1", Username: "alice", DefaultPasswordChanged: true}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"current_password":"old","new_password":"newpass","confirm_password":"newpass"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/change-password", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("username", "alice")
	c.Set("role", domain.RoleUser)

	if err := handler.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ChangePassword_ConfirmMismatch(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubUserService{
		changeFn: func(ctx context.Context, username, currentPassword, newPassword string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"current_password":"old","new_password":"newpass","confirm_password":"different"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/change-password", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("username", "alice")
	c.Set("role", domain.RoleUser)

	if err := handler.ChangePassword(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_ChangePassword_MissingClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/change-password", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ChangePassword(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
