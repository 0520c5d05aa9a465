package auth

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/baechuer/identity-service/internal/domain"
)

// profileLoadTimeout bounds a shared directory load once it is detached from
// the caller that started it.
const profileLoadTimeout = 5 * time.Second

// GetInfo returns the profile for id, or nil when no such user exists.
func (s *Service) GetInfo(ctx context.Context, id string) (*domain.Profile, error) {
	if id == "" {
		return nil, nil
	}

	if p, ok := s.profiles.Get(ctx, id); ok {
		return &p, nil
	}

	// Concurrent misses for the same id share one directory lookup. The load is
	// detached from the starting caller's cancellation; each caller waits on its own ctx.
	ch := s.loads.DoChan(id, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), profileLoadTimeout)
		defer cancel()

		u, found, err := s.users.FindByID(lctx, id)
		if err != nil || !found {
			return (*domain.Profile)(nil), err
		}
		p := u.Profile()
		s.profiles.Set(lctx, p)
		return &p, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	p := res.Val.(*domain.Profile)
	if p == nil {
		return nil, nil
	}
	out := *p
	return &out, nil
}
