package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
	"github.com/churchhub/chms-api/internal/core/token"
)

// AuthService implements registration, login, and self-account mutations.
type AuthService struct {
	repo    ports.PrincipalRepository
	codec   *token.Codec
	limiter ports.LoginLimiter // optional
	log     zerolog.Logger
}

func NewAuthService(repo ports.PrincipalRepository, codec *token.Codec, limiter ports.LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, limiter: limiter, log: log}
}

// Register creates a principal and issues a token for it. The duplicate-email
// pre-check is advisory; the unique index on principals.email is the
// correctness backstop when two registrations race.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Principal, string, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, "", fmt.Errorf("%w: username, email, password and role are required", domain.ErrInvalidInput)
	}
	if !domain.ValidRole(in.Role) {
		return nil, "", fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, in.Role)
	}
	if in.Password != in.ConfirmPassword {
		return nil, "", domain.ErrPasswordMismatch
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrPrincipalNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	p := &domain.Principal{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Department:   in.Department,
		PhoneNumber:  in.PhoneNumber,
		ChurchBranch: in.ChurchBranch,
		Country:      in.Country,
	}
	if in.Address != nil {
		p.Address = *in.Address
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, "", err
	}

	tkn, err := s.codec.Issue(created.ID, created.Role)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("principal_id", created.ID).Str("role", created.Role).Msg("principal registered")
	return created, tkn, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// are indistinguishable to the caller: both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		} else if !allowed {
			s.log.Warn().Str("email", email).Msg("login throttled")
			return "", nil, domain.ErrInvalidCredentials
		}
	}

	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	tkn, err := s.codec.Issue(p.ID, p.Role)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("principal_id", p.ID).Msg("login successful")
	return tkn, p, nil
}

// ChangePassword re-hashes the caller's password with a fresh salt after the
// confirmation check. The caller record is re-loaded so a deleted principal
// cannot rotate its own credentials inside the token's staleness window.
func (s *AuthService) ChangePassword(ctx context.Context, caller domain.Caller, newPassword, confirmPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if newPassword != confirmPassword {
		return domain.ErrPasswordMismatch
	}

	p, err := s.repo.FindByID(ctx, caller.ID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	p.PasswordHash = string(hash)

	if _, err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.log.Info().Str("principal_id", p.ID).Msg("password changed")
	return nil
}

// UpdateSelf applies permitted profile fields to the caller's own record.
// A role change a non-admin caller is not entitled to is dropped while the
// rest of the patch still applies.
func (s *AuthService) UpdateSelf(ctx context.Context, caller domain.Caller, patch domain.ProfilePatch) (*domain.Principal, error) {
	p, err := s.repo.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	if patch.Username != "" {
		p.Username = patch.Username
	}
	if patch.Department != "" {
		p.Department = patch.Department
	}
	if patch.PhoneNumber != "" {
		p.PhoneNumber = patch.PhoneNumber
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.ChurchBranch != "" {
		p.ChurchBranch = patch.ChurchBranch
	}
	if patch.Country != "" {
		p.Country = patch.Country
	}

	if patch.Role != "" && patch.Role != p.Role {
		if domain.CanSetRole(caller, patch.Role) && domain.ValidRole(patch.Role) {
			p.Role = patch.Role
		} else {
			s.log.Warn().
				Str("principal_id", caller.ID).
				Str("requested_role", patch.Role).
				Msg("role change rejected on self-update")
		}
	}

	return s.repo.Update(ctx, p)
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Record(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login limiter record failed")
	}
}
