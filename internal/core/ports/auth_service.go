package ports

import (
	"context"

	"github.com/churchhub/chms-api/internal/core/domain"
)

// RegisterInput carries a registration candidate. Password and ConfirmPassword
// must match; Email must be unused.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
	Department      string
	PhoneNumber     string
	Address         *domain.Address
	ChurchBranch    string
	Country         string
}

// AuthService is the credential manager: registration, login, and the two
// self-mutating account operations.
type AuthService interface {
	// Register creates a principal and returns it with a freshly issued token.
	Register(ctx context.Context, in RegisterInput) (*domain.Principal, string, error)
	// Login authenticates by email and password. Unknown email and wrong
	// password both yield domain.ErrInvalidCredentials — the API never
	// discloses whether an account exists.
	Login(ctx context.Context, email, password string) (string, *domain.Principal, error)
	// ChangePassword re-hashes with a fresh salt after the mismatch check.
	ChangePassword(ctx context.Context, caller domain.Caller, newPassword, confirmPassword string) error
	// UpdateSelf applies permitted profile fields. A role change by a
	// non-admin caller is dropped; the remaining fields still apply.
	UpdateSelf(ctx context.Context, caller domain.Caller, patch domain.ProfilePatch) (*domain.Principal, error)
}

// LoginLimiter guards the login path against brute forcing. Implementations
// must fail open: a limiter backend outage never blocks authentication.
type LoginLimiter interface {
	// Allow reports whether another attempt for this key is permitted.
	Allow(ctx context.Context, key string) (bool, error)
	// Record notes a failed attempt for this key.
	Record(ctx context.Context, key string) error
	// Reset clears recorded attempts after a successful login.
	Reset(ctx context.Context, key string) error
}
