package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/churchhub/chms-api/internal/api/middleware"
	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*domain.Principal, string, error)
	loginFn          func(ctx context.Context, email, password string) (string, *domain.Principal, error)
	changePasswordFn func(ctx context.Context, caller domain.Caller, newPassword, confirmPassword string) error
	updateSelfFn     func(ctx context.Context, caller domain.Caller, patch domain.ProfilePatch) (*domain.Principal, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Principal, string, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, caller domain.Caller, newPassword, confirmPassword string) error {
	return s.changePasswordFn(ctx, caller, newPassword, confirmPassword)
}

func (s *stubAuthService) UpdateSelf(ctx context.Context, caller domain.Caller, patch domain.ProfilePatch) (*domain.Principal, error) {
	return s.updateSelfFn(ctx, caller, patch)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Principal, string, error) {
			if in.Username != "grace" || in.Role != "user" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Principal{ID: "p1", Username: in.Username, Email: in.Email, Role: in.Role}, "tok123", nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"grace","email":"grace@example.com","password":"longenough","confirm_password":"longenough","role":"user"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok123" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
	principal, ok := resp["principal"].(map[string]any)
	if !ok {
		t.Fatalf("expected principal in response")
	}
	if principal["username"] != "grace" {
		t.Fatalf("unexpected principal payload: %+v", principal)
	}
	if _, leaked := principal["password"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Principal, string, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, "", nil
		},
	})

	body := strings.NewReader(`{"username":"grace","email":"not-an-email","password":"longenough","confirm_password":"longenough","role":"user"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_PropagatesInvalidCredentials(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})

	body := strings.NewReader(`{"email":"grace@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_ChangePassword_RequiresCaller(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		changePasswordFn: func(ctx context.Context, caller domain.Caller, newPassword, confirmPassword string) error {
			t.Fatal("service must not be called without a caller")
			return nil
		},
	})

	body := strings.NewReader(`{"password":"longenough","confirm_password":"longenough"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/password", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.ChangePassword(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_UpdateSelf_PassesCallerAndPatch(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		updateSelfFn: func(ctx context.Context, caller domain.Caller, patch domain.ProfilePatch) (*domain.Principal, error) {
			if caller.ID != "p1" || caller.Role != domain.RoleUser {
				t.Fatalf("unexpected caller: %+v", caller)
			}
			if patch.Country != "Ghana" || patch.Role != "admin" {
				t.Fatalf("unexpected patch: %+v", patch)
			}
			return &domain.Principal{ID: "p1", Username: "grace", Role: domain.RoleUser, Country: patch.Country}, nil
		},
	})

	body := strings.NewReader(`{"country":"Ghana","role":"admin"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/me", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CallerKey, domain.Caller{ID: "p1", Role: domain.RoleUser})

	if err := handler.UpdateSelf(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	principal := resp["principal"].(map[string]any)
	if principal["role"] != "user" {
		t.Fatalf("role escalation leaked into response: %+v", principal)
	}
}
