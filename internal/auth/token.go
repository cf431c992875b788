package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind discriminates access tokens from refresh tokens inside the
// signed payload. A refresh token is never accepted where an access token is
// expected and vice versa.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// TokenService issues and validates HS256-signed, self-contained tokens.
// Possession of an unexpired token with a valid signature and a resolvable
// subject is the sole authority; no session state is kept server-side.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess signs a short-lived access token for the given email.
func (s *TokenService) IssueAccess(email string) (string, error) {
	return s.issue(email, TokenAccess, s.accessTTL)
}

// IssueRefresh signs a longer-lived refresh token for the given email.
func (s *TokenService) IssueRefresh(email string) (string, error) {
	return s.issue(email, TokenRefresh, s.refreshTTL)
}

func (s *TokenService) issue(email string, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  email,
		"type": string(kind),
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate checks signature, expiry and the type discriminator, and returns
// the subject email. Every failure collapses into ErrInvalidToken so that no
// internal detail leaks into responses.
func (s *TokenService) Validate(token string, kind TokenKind) (string, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC; the library would
		// otherwise accept whatever algorithm the token header announces.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != string(kind) {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
