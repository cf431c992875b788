package auth

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is the umbrella error for failed logins. The two
// concrete reasons below wrap it so that callers can log the distinction
// while the HTTP layer emits one indistinguishable message for both,
// preventing account enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

var (
	ErrNoSuchUser  = fmt.Errorf("no such user: %w", ErrInvalidCredentials)
	ErrBadPassword = fmt.Errorf("bad password: %w", ErrInvalidCredentials)
)

// ErrInvalidToken covers every token validation failure: bad signature,
// elapsed expiry, wrong token type or unresolvable subject. The cause is
// deliberately not propagated outward.
var ErrInvalidToken = errors.New("invalid token")

// Account lifecycle errors, surfaced to clients as 400s with their reason.
var (
	ErrUnknownEmail    = errors.New("email address doesn't exist")
	ErrAlreadyVerified = errors.New("already confirmed")
	ErrCodeMismatch    = errors.New("verification code error")
	ErrCodeExpired     = errors.New("verification code is outdated")
)

// ValidationError names the first rule violated by a registration request.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return e.Reason }
