package memory

import (
	"context"

	"github.com/baechuer/identity-service/internal/application/auth"
	"github.com/baechuer/identity-service/internal/logger"
)

// NoopPublisher stands in for RabbitMQ when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	logger.WithCtx(ctx).Debug().
		Str("user_id", evt.UserID).
		Msg("noop publisher: user registered")
	return nil
}
