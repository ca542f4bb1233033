package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
	"github.com/churchhub/chms-api/internal/core/token"
)

type stubPrincipalRepo struct {
	byID   map[string]*domain.Principal
	nextID int
}

func newStubPrincipalRepo() *stubPrincipalRepo {
	return &stubPrincipalRepo{byID: make(map[string]*domain.Principal)}
}

func clonePrincipal(p *domain.Principal) *domain.Principal {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPrincipalRepo) Create(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	for _, existing := range r.byID {
		if existing.Email == p.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := clonePrincipal(p)
	copy.ID = string(rune('a' + r.nextID - 1))
	r.byID[copy.ID] = clonePrincipal(copy)
	return copy, nil
}

func (r *stubPrincipalRepo) FindByEmail(_ context.Context, email string) (*domain.Principal, error) {
	for _, p := range r.byID {
		if p.Email == email {
			return clonePrincipal(p), nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

func (r *stubPrincipalRepo) FindByID(_ context.Context, id string) (*domain.Principal, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	return clonePrincipal(p), nil
}

func (r *stubPrincipalRepo) Update(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	if _, ok := r.byID[p.ID]; !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	r.byID[p.ID] = clonePrincipal(p)
	return clonePrincipal(p), nil
}

func (r *stubPrincipalRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPrincipalNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubPrincipalRepo) List(_ context.Context, page domain.PageRequest) ([]domain.Principal, int64, error) {
	out := make([]domain.Principal, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPrincipalRepo) MissingIDs(_ context.Context, ids []string) ([]string, error) {
	var missing []string
	for _, id := range ids {
		if _, ok := r.byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func newTestAuthService(t *testing.T, repo ports.PrincipalRepository) *AuthService {
	t.Helper()
	codec, err := token.NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return NewAuthService(repo, codec, nil, zerolog.Nop())
}

func registerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		Username:        "alice",
		Email:           email,
		Password:        "pw123456",
		ConfirmPassword: "pw123456",
		Role:            domain.RoleUser,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubPrincipalRepo()
	svc := newTestAuthService(t, repo)

	p, tkn, err := svc.Register(context.Background(), registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if tkn == "" {
		t.Fatalf("expected a token")
	}
	if p.PasswordHash == "pw123456" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte("pw123456")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	// The same credentials must authenticate afterwards.
	if _, _, err := svc.Login(context.Background(), "a@x.com", "pw123456"); err != nil {
		t.Fatalf("Login after Register: %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubPrincipalRepo()
	svc := newTestAuthService(t, repo)

	if _, _, err := svc.Register(context.Background(), registerInput("a@x.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), registerInput("a@x.com")); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected no second record, got %d", len(repo.byID))
	}
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	repo := newStubPrincipalRepo()
	svc := newTestAuthService(t, repo)

	in := registerInput("a@x.com")
	in.ConfirmPassword = "other"
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected no record created")
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubPrincipalRepo()
	svc := newTestAuthService(t, repo)

	in := registerInput("a@x.com")
	in.Role = "superadmin"
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	repo := newStubPrincipalRepo()
	svc := newTestAuthService(t, repo)

	if _, _, err := svc.Register(context.Background(), registerInput("a@x.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, unknownErr := svc.Login(context.Background(), "ghost@x.com", "pw123456")
	_, _, wrongErr := svc.Login(context.Background(), "a@x.com", "wrongpass")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
}

func TestAuthService_Login_TokenCarriesIdentity(t *testing.T) {
	repo := newStubPrincipalRepo()
	codec, _ := token.NewCodec("test-secret", time.Hour)
	svc := NewAuthService(repo, codec, nil, zerolog.Nop())

	in := registerInput("a@x.com")
	in.Role = domain.RoleAdmin
	p, _, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tkn, _, err := svc.Login(context.Background(), "a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := codec.Verify(tkn)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SubjectID != p.ID || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubPrincipalRepo()
	svc := newTestAuthService(t, repo)

	p, _, err := svc.Register(context.Background(), registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	caller := domain.Caller{ID: p.ID, Role: p.Role}

	if err := svc.ChangePassword(context.Background(), caller, "newpass99", "different"); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	// Old password still valid after the failed attempt.
	if _, _, err := svc.Login(context.Background(), "a@x.com", "pw123456"); err != nil {
		t.Fatalf("old password rejected after failed change: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), caller, "newpass99", "newpass99"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", "newpass99"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", "pw123456"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted")
	}
}

func TestAuthService_UpdateSelf_RoleEscalationDropped(t *testing.T) {
	repo := newStubPrincipalRepo()
	svc := newTestAuthService(t, repo)

	p, _, err := svc.Register(context.Background(), registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	caller := domain.Caller{ID: p.ID, Role: domain.RoleUser}

	updated, err := svc.UpdateSelf(context.Background(), caller, domain.ProfilePatch{
		Username: "alice2",
		Country:  "Nigeria",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("UpdateSelf: %v", err)
	}
	if updated.Role != domain.RoleUser {
		t.Fatalf("role escalated to %q", updated.Role)
	}
	// The permitted fields in the same request still apply.
	if updated.Username != "alice2" || updated.Country != "Nigeria" {
		t.Fatalf("permitted fields not applied: %+v", updated)
	}
}

func TestAuthService_UpdateSelf_PrincipalGone(t *testing.T) {
	repo := newStubPrincipalRepo()
	svc := newTestAuthService(t, repo)

	caller := domain.Caller{ID: "missing", Role: domain.RoleUser}
	if _, err := svc.UpdateSelf(context.Background(), caller, domain.ProfilePatch{Username: "x"}); !errors.Is(err, domain.ErrPrincipalNotFound) {
		t.Fatalf("expected ErrPrincipalNotFound, got %v", err)
	}
}
