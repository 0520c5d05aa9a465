package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/baechuer/identity-service/internal/domain"
)

func issuerAt(secret string, at time.Time) *JWTIssuer {
	s := NewJWTIssuer(secret, "identity-service")
	s.now = func() time.Time { return at }
	return s
}

func TestJWTIssuer_IssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	s := NewJWTIssuer("secret", "identity-service")
	tok, err := s.Issue("u1", "test@example.com")
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}
	if strings.Count(tok, ".") != 2 {
		t.Fatalf("expected jwt with 3 segments, got %q", tok)
	}

	claims, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("verify err: %v", err)
	}
	if claims.Subject != "u1" || claims.Email != "test@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTIssuer_Claims_OneHourExpiryAndIssuer(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s := issuerAt("secret", at)

	tok, err := s.Issue("u1", "a@b.com")
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}

	mc := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, mc)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}

	if mc["sub"] != "u1" || mc["email"] != "a@b.com" || mc["iss"] != "identity-service" {
		t.Fatalf("unexpected claims: %+v", mc)
	}
	iat, _ := mc["iat"].(float64)
	exp, _ := mc["exp"].(float64)
	if int64(iat) != at.Unix() {
		t.Fatalf("expected iat=%d, got %v", at.Unix(), iat)
	}
	if int64(exp)-int64(iat) != 3600 {
		t.Fatalf("expected exp-iat=3600, got %v", exp-iat)
	}
}

func TestJWTIssuer_Verify_Expired_ReturnsTokenExpired(t *testing.T) {
	t.Parallel()

	at := time.Now().Add(-2 * time.Hour)
	tok, err := issuerAt("secret", at).Issue("u1", "a@b.com")
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}

	_, verr := NewJWTIssuer("secret", "identity-service").Verify(tok)
	if !domain.Is(verr, "token_expired") {
		t.Fatalf("expected token_expired, got %v", verr)
	}
}

func TestJWTIssuer_Verify_WrongSecret_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTIssuer("secret1", "identity-service").Issue("u1", "a@b.com")
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}

	_, verr := NewJWTIssuer("secret2", "identity-service").Verify(tok)
	if !domain.Is(verr, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", verr)
	}
}

func TestJWTIssuer_Verify_WrongIssuer_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTIssuer("secret", "someone-else").Issue("u1", "a@b.com")
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}

	_, verr := NewJWTIssuer("secret", "identity-service").Verify(tok)
	if !domain.Is(verr, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", verr)
	}
}

func TestJWTIssuer_Verify_AlgConfusion_Rejected(t *testing.T) {
	t.Parallel()

	claims := jwt.MapClaims{
		"email": "a@b.com",
		"iss":   "identity-service",
		"sub":   "u1",
		"exp":   time.Now().Add(time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, claims)

	unsigned, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("unexpected signing err: %v", err)
	}

	_, verr := NewJWTIssuer("secret", "identity-service").Verify(unsigned)
	if !domain.Is(verr, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", verr)
	}
}

func TestJWTIssuer_Verify_MissingSubject_Rejected(t *testing.T) {
	t.Parallel()

	claims := jwt.MapClaims{
		"iss": "identity-service",
		"exp": time.Now().Add(time.Minute).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	_, verr := NewJWTIssuer("secret", "identity-service").Verify(tok)
	if !domain.Is(verr, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", verr)
	}
}

func TestJWTIssuer_Verify_Garbage_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	_, err := NewJWTIssuer("secret", "identity-service").Verify("not.a.jwt")
	if !domain.Is(err, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", err)
	}
}
