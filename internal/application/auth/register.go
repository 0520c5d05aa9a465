package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/identity-service/internal/domain"
	"github.com/baechuer/identity-service/internal/logger"
)

// RegistrationRequest is the applicant data. The password is only ever handed to the hasher.
type RegistrationRequest struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

type Outcome string

const (
	OutcomeCreated     Outcome = "created"
	OutcomeBlacklisted Outcome = "blacklisted"
	OutcomeDuplicate   Outcome = "duplicate"
)

// RegistrationResult carries the business outcome of a registration.
// User is set only when Outcome == OutcomeCreated.
type RegistrationResult struct {
	Success bool
	Outcome Outcome
	User    *domain.User
	Message string
}

func blacklisted() RegistrationResult {
	return RegistrationResult{Outcome: OutcomeBlacklisted, Message: domain.MsgUserBlacklisted}
}

func duplicate() RegistrationResult {
	return RegistrationResult{Outcome: OutcomeDuplicate, Message: domain.MsgUserAlreadyCreated}
}

func newUserID() string { return uuid.NewString() }

// Register screens the applicant, enforces email uniqueness, hashes the password and
// persists the user, in that order. Blacklisted and duplicate applicants are returned as
// results; screening and storage faults are returned as errors.
func (s *Service) Register(ctx context.Context, req RegistrationRequest) (RegistrationResult, error) {
	listed, err := s.screener.Screen(ctx, req.FirstName, req.LastName, req.Email)
	if err != nil {
		s.audit.ScreeningFailed(ctx, req.Email, err)
		s.metrics.Registration("screening_unavailable")
		return RegistrationResult{}, err
	}
	if listed {
		s.audit.RegistrationRejected(ctx, req.Email, string(OutcomeBlacklisted))
		s.metrics.Registration(string(OutcomeBlacklisted))
		return blacklisted(), nil
	}

	email := domain.NormalizeEmail(req.Email)

	if _, found, err := s.users.FindByEmail(ctx, email); err != nil {
		s.metrics.Registration("error")
		return RegistrationResult{}, err
	} else if found {
		s.audit.RegistrationRejected(ctx, email, string(OutcomeDuplicate))
		s.metrics.Registration(string(OutcomeDuplicate))
		return duplicate(), nil
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.metrics.Registration("error")
		return RegistrationResult{}, domain.ErrHashFailed(err)
	}

	created, err := s.users.Create(ctx, domain.User{
		ID:           s.newID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		// A concurrent registration won the unique constraint.
		if domain.Is(err, "email_already_exists") {
			s.audit.RegistrationRejected(ctx, email, string(OutcomeDuplicate))
			s.metrics.Registration(string(OutcomeDuplicate))
			return duplicate(), nil
		}
		s.metrics.Registration("error")
		return RegistrationResult{}, err
	}

	s.audit.UserRegistered(ctx, created.ID, created.Email)
	s.metrics.Registration(string(OutcomeCreated))
	s.profiles.Set(ctx, created.Profile())

	if err := s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:    created.ID,
		Email:     created.Email,
		FirstName: created.FirstName,
		LastName:  created.LastName,
		CreatedAt: created.CreatedAt,
	}); err != nil {
		// The user is persisted; the event is best effort.
		logger.WithCtx(ctx).Warn().Err(err).Str("user_id", created.ID).Msg("user_registered_publish_failed")
	}

	return RegistrationResult{Success: true, Outcome: OutcomeCreated, User: &created}, nil
}
