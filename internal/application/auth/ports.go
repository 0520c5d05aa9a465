package auth

import (
	"context"
	"time"

	"github.com/baechuer/identity-service/internal/domain"
)

/*
UserDirectory
-------------
Persistence port for users.
Only describes WHAT the identity core needs, not HOW it's stored.
Absence is (zero, false, nil); storage faults are domain.ErrPersistence.
Create must translate a unique-email violation into domain.ErrEmailAlreadyExists.
*/
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (domain.User, bool, error)
	FindByID(ctx context.Context, id string) (domain.User, bool, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

/*
CredentialHasher
----------------
One-way password hashing. Verify never errors: a malformed hash is a mismatch.
*/
type CredentialHasher interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) bool
}

/*
BlacklistScreener
-----------------
External risk screening. true = blacklisted.
Any failure is domain.ErrScreeningUnavailable, never a "not blacklisted" default.
*/
type BlacklistScreener interface {
	Screen(ctx context.Context, firstName, lastName, email string) (bool, error)
}

/*
TokenIssuer
-----------
Signs identity tokens carrying {sub, email}.
*/
type TokenIssuer interface {
	Issue(subjectID string, email string) (string, error)
}

/*
ProfileCache
------------
Optional read-through cache for profile retrieval.
Backed by Redis. Misses and cache errors both read as "not cached".
*/
type ProfileCache interface {
	Get(ctx context.Context, id string) (domain.Profile, bool)
	Set(ctx context.Context, p domain.Profile)
}

/*
EventPublisher
--------------
Publishes registration events to RabbitMQ.
*/
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
}

type UserRegisteredEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

/*
Auditor
-------
Structured audit trail for business outcomes.
*/
type Auditor interface {
	UserRegistered(ctx context.Context, userID, email string)
	RegistrationRejected(ctx context.Context, email, reason string)
	ScreeningFailed(ctx context.Context, email string, err error)
	LoginSucceeded(ctx context.Context, userID, email string)
	LoginFailed(ctx context.Context, email, reason string)
}
