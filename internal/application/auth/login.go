package auth

import (
	"context"

	"github.com/baechuer/identity-service/internal/domain"
)

type LoginRequest struct {
	Email    string
	Password string
}

// Session is the login result: either Authenticated or Rejected, never a mix.
type Session interface {
	isSession()
}

// Authenticated carries every identity field plus the signed token.
type Authenticated struct {
	ID        string
	FirstName string
	LastName  string
	Token     string
}

// Rejected is returned for an unknown email and for a wrong password alike.
type Rejected struct{}

func (Authenticated) isSession() {}
func (Rejected) isSession()      {}

// Login authenticates a user and issues a token.
// It must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, req LoginRequest) (Session, error) {
	email := domain.NormalizeEmail(req.Email)

	if email == "" || req.Password == "" {
		s.reject(ctx, email, "empty_credentials")
		return Rejected{}, nil
	}

	u, found, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.metrics.LoginAttempt("error")
		return nil, err
	}
	if !found {
		s.reject(ctx, email, "unknown_email")
		return Rejected{}, nil
	}

	if !s.hasher.Verify(req.Password, u.PasswordHash) {
		s.reject(ctx, email, "password_mismatch")
		return Rejected{}, nil
	}

	token, err := s.issuer.Issue(u.ID, u.Email)
	if err != nil {
		s.metrics.LoginAttempt("error")
		return nil, domain.ErrTokenSignFailed(err)
	}

	s.audit.LoginSucceeded(ctx, u.ID, u.Email)
	s.metrics.LoginAttempt("success")

	return Authenticated{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Token:     token,
	}, nil
}

// reason is for the audit trail only; callers always see Rejected.
func (s *Service) reject(ctx context.Context, email, reason string) {
	s.audit.LoginFailed(ctx, email, reason)
	s.metrics.LoginAttempt("invalid_credentials")
}
