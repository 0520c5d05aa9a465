package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baechuer/identity-service/internal/application/auth"
	"github.com/baechuer/identity-service/internal/domain"
	"github.com/baechuer/identity-service/internal/infrastructure/memory"
	"github.com/baechuer/identity-service/internal/infrastructure/security"
)

const testSecret = "handler-test-secret"

type stubScreener struct {
	listed bool
	err    error
	calls  int
}

func (s *stubScreener) Screen(ctx context.Context, firstName, lastName, email string) (bool, error) {
	s.calls++
	return s.listed, s.err
}

type harness struct {
	users    *memory.UserDirectory
	screener *stubScreener
	issuer   *security.JWTIssuer
	handler  *UserHandler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		users:    memory.NewUserDirectory(),
		screener: &stubScreener{},
		issuer:   security.NewJWTIssuer(testSecret, "identity-service"),
	}
	svc := auth.NewService(h.users, security.NewBcryptHasher(bcrypt.MinCost), h.screener, h.issuer)
	h.handler = NewUserHandler(svc)
	return h
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body=%s", rr.Body.String())
	return v
}

func seedUser(t *testing.T, h *harness) domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw123"), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := h.users.Create(context.Background(), domain.User{
		ID:           "11111111-1111-1111-1111-111111111111",
		FirstName:    "T",
		LastName:     "U",
		Email:        "test@example.com",
		PasswordHash: string(hash),
	})
	require.NoError(t, err)
	return u
}
