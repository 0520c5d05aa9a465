package auth

import (
	"testing"

	"github.com/baechuer/identity-service/internal/domain"
)

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}

func requireRejected(t *testing.T, s Session) {
	t.Helper()
	if _, ok := s.(Rejected); !ok {
		t.Fatalf("expected Rejected session, got %#v", s)
	}
}

func requireAuthenticated(t *testing.T, s Session) Authenticated {
	t.Helper()
	a, ok := s.(Authenticated)
	if !ok {
		t.Fatalf("expected Authenticated session, got %#v", s)
	}
	return a
}
