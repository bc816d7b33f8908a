package api

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

const (
	envAuthTestMode  = "AUTH_TEST_MODE"
	envTestJWTSecret = "TEST_JWT_SECRET"
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errBadAuthorization     = errors.New("bad auth header")
)

// Auth validates incoming JWT tokens against a JWKS. In test mode tokens are
// verified with an HS256 shared secret from the environment instead.
type Auth struct {
	jwks       *keyfunc.JWKS
	audience   string
	issuer     string
	testMode   bool
	testSecret []byte
	parser     *jwt.Parser
}

// NewAuth creates a new Auth instance.
func NewAuth(jwks *keyfunc.JWKS, audience, issuer string) *Auth {
	a := &Auth{jwks: jwks, audience: audience, issuer: issuer}
	if os.Getenv(envAuthTestMode) == "1" {
		secret := os.Getenv(envTestJWTSecret)
		if secret == "" {
			panic("TEST_JWT_SECRET must be set when AUTH_TEST_MODE=1")
		}
		a.testMode = true
		a.testSecret = []byte(secret)
		a.parser = jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
		return a
	}
	a.parser = jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	return a
}

// UserIDFromAuthHeader extracts the subject claim from a bearer token.
func (a *Auth) UserIDFromAuthHeader(h string) (string, error) {
	if h == "" {
		return "", errMissingAuthorization
	}
	parts := strings.SplitN(strings.TrimSpace(h), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errBadAuthorization
	}
	tokenStr := parts[1]
	if strings.Count(tokenStr, ".") != 2 {
		return "", errBadAuthorization
	}

	var token *jwt.Token
	var err error
	if a.testMode {
		token, err = a.parser.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return a.testSecret, nil
		})
	} else {
		if a.jwks == nil {
			return "", errors.New("jwks not configured")
		}
		token, err = a.parser.Parse(tokenStr, a.jwks.Keyfunc)
	}
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	now := time.Now().Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return "", errors.New("token expired")
	}
	if !claims.VerifyNotBefore(now, false) {
		return "", errors.New("token not valid yet")
	}
	if a.audience != "" && !claims.VerifyAudience(a.audience, false) {
		return "", errors.New("invalid audience")
	}
	if a.issuer != "" && !claims.VerifyIssuer(a.issuer, false) {
		return "", errors.New("invalid issuer")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub")
	}
	return sub, nil
}

// OpenAccess authenticates every request as a fixed local user. It is used
// when no identity provider is configured; the board is then a single shared
// workspace.
type OpenAccess struct{}

func (OpenAccess) UserIDFromAuthHeader(string) (string, error) { return "local", nil }
