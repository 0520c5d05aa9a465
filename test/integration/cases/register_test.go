//go:build integration

package cases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/identity-service/internal/application/auth"
)

func register(t *testing.T, d *Deps, email string) auth.RegistrationResult {
	t.Helper()

	res, err := d.Svc.Register(context.Background(), auth.RegistrationRequest{
		Email:     email,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "pw123",
	})
	require.NoError(t, err)
	return res
}

func Test_Register_Login_Me(t *testing.T) {
	d := MustNewDeps(t)
	ctx := context.Background()

	email := uniqueEmail("Ada")
	res := register(t, d, email)
	require.Equal(t, auth.OutcomeCreated, res.Outcome)

	var stored string
	require.NoError(t, d.DB.QueryRowContext(ctx,
		`SELECT email FROM users WHERE id = $1`, res.User.ID).Scan(&stored))
	assert.Equal(t, strings.ToLower(email), stored)

	s, err := d.Svc.Login(ctx, auth.LoginRequest{Email: strings.ToUpper(email), Password: "pw123"})
	require.NoError(t, err)
	a, ok := s.(auth.Authenticated)
	require.True(t, ok, "expected Authenticated, got %#v", s)

	claims, err := d.Issuer.Verify(a.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.Subject)

	p, err := d.Svc.GetInfo(ctx, claims.Subject)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Ada", p.FirstName)
	assert.WithinDuration(t, time.Now(), p.CreatedAt, time.Minute)
}

func Test_Register_Duplicate_CaseInsensitive(t *testing.T) {
	d := MustNewDeps(t)

	email := uniqueEmail("dup")
	require.Equal(t, auth.OutcomeCreated, register(t, d, email).Outcome)

	again := register(t, d, strings.ToUpper(email))
	assert.Equal(t, auth.OutcomeDuplicate, again.Outcome)
	assert.Equal(t, "User already created", again.Message)
}

func Test_Register_Blacklisted_NotPersisted(t *testing.T) {
	d := MustNewDeps(t)

	email := uniqueEmail("listed")
	d.Screening.List(email)

	res := register(t, d, email)
	assert.Equal(t, auth.OutcomeBlacklisted, res.Outcome)

	_, found, err := d.Users.FindByEmail(context.Background(), strings.ToLower(email))
	require.NoError(t, err)
	assert.False(t, found)
}

func Test_Login_WrongPassword_Rejected(t *testing.T) {
	d := MustNewDeps(t)

	email := uniqueEmail("wrong")
	register(t, d, email)

	s, err := d.Svc.Login(context.Background(), auth.LoginRequest{Email: email, Password: "nope"})
	require.NoError(t, err)
	assert.IsType(t, auth.Rejected{}, s)
}
