package audit

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	ctxpkg "github.com/baechuer/identity-service/internal/pkg/context"
)

// Logger writes identity business events as structured audit lines.
// Raw emails never reach the log; they are masked first.
type Logger struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Bool("audit", true).Logger(),
	}
}

// UserRegistered logs a successful registration.
func (l *Logger) UserRegistered(ctx context.Context, userID, email string) {
	l.log.Info().
		Str("action", "user_registered").
		Str("user_id", userID).
		Str("email", maskEmail(email)).
		Str("request_id", ctxpkg.GetRequestID(ctx)).
		Msg("User registered")
}

// RegistrationRejected logs a blacklisted or duplicate applicant.
func (l *Logger) RegistrationRejected(ctx context.Context, email, reason string) {
	l.log.Warn().
		Str("action", "registration_rejected").
		Str("email", maskEmail(email)).
		Str("reason", reason).
		Str("request_id", ctxpkg.GetRequestID(ctx)).
		Msg("Registration rejected")
}

func (l *Logger) ScreeningFailed(ctx context.Context, email string, err error) {
	l.log.Error().
		Err(err).
		Str("action", "screening_failed").
		Str("email", maskEmail(email)).
		Str("request_id", ctxpkg.GetRequestID(ctx)).
		Msg("Blacklist screening unavailable")
}

func (l *Logger) LoginSucceeded(ctx context.Context, userID, email string) {
	l.log.Info().
		Str("action", "login_success").
		Str("user_id", userID).
		Str("email", maskEmail(email)).
		Str("request_id", ctxpkg.GetRequestID(ctx)).
		Msg("User logged in successfully")
}

func (l *Logger) LoginFailed(ctx context.Context, email, reason string) {
	l.log.Warn().
		Str("action", "login_failed").
		Str("email", maskEmail(email)).
		Str("reason", reason).
		Str("request_id", ctxpkg.GetRequestID(ctx)).
		Msg("Login attempt failed")
}

// maskEmail keeps the first two characters of the local part and the domain.
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if len(email) < 5 || at < 0 {
		return "***"
	}
	if at < 2 {
		return email[:at] + "***" + email[at:]
	}
	return email[:2] + "***" + email[at:]
}
