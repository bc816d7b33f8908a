package api

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func signedTestToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func testModeAuth(t *testing.T, secret string) *Auth {
	t.Helper()
	t.Setenv(envAuthTestMode, "1")
	t.Setenv(envTestJWTSecret, secret)
	return NewAuth(nil, "api://aud", "https://issuer/")
}

func TestUserIDFromAuthHeaderHS256(t *testing.T) {
	secret := "test-secret"
	auth := testModeAuth(t, secret)
	signed := signedTestToken(t, []byte(secret), jwt.MapClaims{
		"sub": "user-123",
		"aud": "api://aud",
		"iss": "https://issuer/",
		"exp": time.Now().Add(5 * time.Minute).Unix(),
		"nbf": time.Now().Add(-time.Minute).Unix(),
		"iat": time.Now().Add(-time.Minute).Unix(),
	})

	userID, err := auth.UserIDFromAuthHeader("Bearer " + signed)
	if err != nil {
		t.Fatalf("unexpected error verifying token: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("unexpected user id: %s", userID)
	}
}

func TestUserIDFromAuthHeaderMissing(t *testing.T) {
	auth := testModeAuth(t, "test-secret")
	if _, err := auth.UserIDFromAuthHeader(""); err == nil || err.Error() != "missing authorization header" {
		t.Fatalf("expected missing header error, got %v", err)
	}
}

func TestUserIDFromAuthHeaderNotBearer(t *testing.T) {
	auth := testModeAuth(t, "test-secret")
	if _, err := auth.UserIDFromAuthHeader("Basic dXNlcjpwYXNz"); err == nil || err.Error() != "bad auth header" {
		t.Fatalf("expected bad auth header error, got %v", err)
	}
}

func TestUserIDFromAuthHeaderManyPeriods(t *testing.T) {
	auth := testModeAuth(t, "test-secret")
	header := "Bearer " + strings.Repeat(".", 1000)
	if _, err := auth.UserIDFromAuthHeader(header); err == nil || err.Error() != "bad auth header" {
		t.Fatalf("expected bad auth header error, got %v", err)
	}
}

func TestUserIDFromAuthHeaderExpiredToken(t *testing.T) {
	secret := "test-secret"
	auth := testModeAuth(t, secret)
	signed := signedTestToken(t, []byte(secret), jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	if _, err := auth.UserIDFromAuthHeader("Bearer " + signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestUserIDFromAuthHeaderWrongAudience(t *testing.T) {
	secret := "test-secret"
	auth := testModeAuth(t, secret)
	signed := signedTestToken(t, []byte(secret), jwt.MapClaims{
		"sub": "user-123",
		"aud": "api://other",
		"exp": time.Now().Add(5 * time.Minute).Unix(),
	})

	if _, err := auth.UserIDFromAuthHeader("Bearer " + signed); err == nil {
		t.Fatal("expected error for wrong audience")
	}
}

func TestUserIDFromAuthHeaderMissingSub(t *testing.T) {
	secret := "test-secret"
	auth := testModeAuth(t, secret)
	signed := signedTestToken(t, []byte(secret), jwt.MapClaims{
		"aud": "api://aud",
		"iss": "https://issuer/",
		"exp": time.Now().Add(5 * time.Minute).Unix(),
	})

	if _, err := auth.UserIDFromAuthHeader("Bearer " + signed); err == nil {
		t.Fatal("expected error for missing sub claim")
	}
}

func TestUserIDFromAuthHeaderBadSignature(t *testing.T) {
	auth := testModeAuth(t, "test-secret")
	signed := signedTestToken(t, []byte("other-secret"), jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(5 * time.Minute).Unix(),
	})

	if _, err := auth.UserIDFromAuthHeader("Bearer " + signed); err == nil {
		t.Fatal("expected error for wrong signature")
	}
}

func TestOpenAccessAlwaysLocal(t *testing.T) {
	userID, err := OpenAccess{}.UserIDFromAuthHeader("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "local" {
		t.Fatalf("unexpected user id: %s", userID)
	}
}
