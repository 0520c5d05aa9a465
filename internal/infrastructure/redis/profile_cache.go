package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/baechuer/identity-service/internal/domain"
	"github.com/baechuer/identity-service/internal/logger"
)

// ProfileCache stores public profiles (never password hashes) under
// "profile:<id>". Every failure degrades to a miss; the directory stays the
// source of truth.
type ProfileCache struct {
	client  *Client
	ttl     time.Duration
	keyPref string
}

func NewProfileCache(client *Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		client:  client,
		ttl:     ttl,
		keyPref: "profile:",
	}
}

func (c *ProfileCache) key(id string) string {
	return c.keyPref + id
}

type cachedProfile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *ProfileCache) Get(ctx context.Context, id string) (domain.Profile, bool) {
	if c.client == nil || id == "" {
		return domain.Profile{}, false
	}

	b, err := c.client.Get(ctx, c.key(id))
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			logger.WithCtx(ctx).Debug().Err(err).Msg("profile cache get failed")
		}
		return domain.Profile{}, false
	}

	var cp cachedProfile
	if err := json.Unmarshal(b, &cp); err != nil || cp.ID != id {
		// corrupt entry; drop it so the next read refills
		_ = c.client.Del(ctx, c.key(id))
		return domain.Profile{}, false
	}

	return domain.Profile{
		ID:        cp.ID,
		FirstName: cp.FirstName,
		LastName:  cp.LastName,
		Email:     cp.Email,
		CreatedAt: cp.CreatedAt,
	}, true
}

func (c *ProfileCache) Set(ctx context.Context, p domain.Profile) {
	if c.client == nil || p.ID == "" {
		return
	}

	b, err := json.Marshal(cachedProfile{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	})
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, c.key(p.ID), b, c.ttl); err != nil {
		logger.WithCtx(ctx).Debug().Err(err).Str("user_id", p.ID).Msg("profile cache set failed")
	}
}
