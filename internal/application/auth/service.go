package auth

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/baechuer/identity-service/internal/domain"
)

type Service struct {
	users    UserDirectory
	hasher   CredentialHasher
	screener BlacklistScreener
	issuer   TokenIssuer

	profiles ProfileCache
	pub      EventPublisher
	audit    Auditor
	metrics  Recorder

	now   func() time.Time
	newID func() string

	loads singleflight.Group
}

// Option customises optional collaborators.
type Option func(*Service)

func WithProfileCache(c ProfileCache) Option {
	return func(s *Service) {
		if c != nil {
			s.profiles = c
		}
	}
}

func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.pub = p
		}
	}
}

func WithAuditor(a Auditor) Option {
	return func(s *Service) {
		if a != nil {
			s.audit = a
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithClock and WithIDGenerator exist for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func NewService(
	users UserDirectory,
	hasher CredentialHasher,
	screener BlacklistScreener,
	issuer TokenIssuer,
	opts ...Option,
) *Service {
	s := &Service{
		users:    users,
		hasher:   hasher,
		screener: screener,
		issuer:   issuer,

		profiles: noopCache{},
		pub:      noopPublisher{},
		audit:    noopAuditor{},
		metrics:  noopRecorder{},

		now:   time.Now,
		newID: newUserID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recorder receives business metric events.
type Recorder interface {
	Registration(outcome string)
	LoginAttempt(status string)
}

// ---- no-op defaults ----

type noopCache struct{}

func (noopCache) Get(context.Context, string) (domain.Profile, bool) { return domain.Profile{}, false }
func (noopCache) Set(context.Context, domain.Profile)                {}

type noopPublisher struct{}

func (noopPublisher) PublishUserRegistered(context.Context, UserRegisteredEvent) error { return nil }

type noopAuditor struct{}

func (noopAuditor) UserRegistered(context.Context, string, string)       {}
func (noopAuditor) RegistrationRejected(context.Context, string, string) {}
func (noopAuditor) ScreeningFailed(context.Context, string, error)       {}
func (noopAuditor) LoginSucceeded(context.Context, string, string)       {}
func (noopAuditor) LoginFailed(context.Context, string, string)          {}

type noopRecorder struct{}

func (noopRecorder) Registration(string) {}
func (noopRecorder) LoginAttempt(string) {}
