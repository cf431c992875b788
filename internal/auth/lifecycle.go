package auth

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/verification"
)

// emailRx accepts addresses like "user.name@example.com". Case is handled by
// lower-casing before the match.
var emailRx = regexp.MustCompile(`^[a-z0-9]+[._]?[a-z0-9]+@\w+\.\w{2,3}$`)

// EmailDispatcher hands a verification email off for asynchronous delivery.
// Enqueueing is best-effort: the lifecycle logs failures and moves on, and
// no delivery confirmation ever flows back.
type EmailDispatcher interface {
	EnqueueVerificationEmail(ctx context.Context, user model.User, code string) error
}

// Lifecycle drives the pending → active account state machine: registration,
// code issuance, verification and re-sending of codes.
type Lifecycle struct {
	users  UserStore
	codes  *verification.Store
	hasher *Hasher
	mail   EmailDispatcher
}

func NewLifecycle(users UserStore, codes *verification.Store, hasher *Hasher, mail EmailDispatcher) *Lifecycle {
	return &Lifecycle{users: users, codes: codes, hasher: hasher, mail: mail}
}

// Register validates the input, persists a pending CLIENT account, issues a
// verification code and dispatches the email. The user row is durably
// committed before the code is issued, so a code never exists for an absent
// account. The returned user is still pending.
func (l *Lifecycle) Register(ctx context.Context, name, email, password, confirm string) (model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return model.User{}, &ValidationError{Reason: "name, email and password are required"}
	}
	if !emailRx.MatchString(email) {
		return model.User{}, &ValidationError{Reason: "must be a valid email address"}
	}
	if password != confirm {
		return model.User{}, &ValidationError{Reason: "password did not match"}
	}

	hash, err := l.hasher.Hash(password)
	if err != nil {
		return model.User{}, err
	}
	id, err := l.users.Create(ctx, name, email, hash, model.RoleClient, false)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return model.User{}, &ValidationError{Reason: "email is already registered"}
		}
		return model.User{}, err
	}
	u := model.User{ID: id, Name: name, Email: email, PasswordHash: hash, Role: model.RoleClient}

	code, err := l.codes.Issue(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	l.dispatch(ctx, u, code)
	return u, nil
}

// VerifyEmail consumes a code for a still-pending account and activates it.
// Nothing is mutated on a mismatched or expired code.
func (l *Lifecycle) VerifyEmail(ctx context.Context, email, code string) error {
	u, err := l.pending(ctx, email)
	if err != nil {
		return err
	}
	outcome, err := l.codes.Check(ctx, u.Email, code)
	if err != nil {
		return err
	}
	switch outcome {
	case verification.Valid:
		return l.users.Activate(ctx, u.ID)
	case verification.Mismatch:
		return ErrCodeMismatch
	default:
		return ErrCodeExpired
	}
}

// ResendCode reissues a verification code for a pending account, replacing
// any earlier one, and dispatches a fresh email.
func (l *Lifecycle) ResendCode(ctx context.Context, email string) error {
	u, err := l.pending(ctx, email)
	if err != nil {
		return err
	}
	code, err := l.codes.Issue(ctx, u.Email)
	if err != nil {
		return err
	}
	l.dispatch(ctx, u, code)
	return nil
}

// pending loads a user that must exist and not yet be verified.
func (l *Lifecycle) pending(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := l.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrUnknownEmail
		}
		return model.User{}, err
	}
	if u.IsActive {
		return model.User{}, ErrAlreadyVerified
	}
	return u, nil
}

func (l *Lifecycle) dispatch(ctx context.Context, u model.User, code string) {
	if err := l.mail.EnqueueVerificationEmail(ctx, u, code); err != nil {
		// Delivery is best-effort; the client can always ask for a resend.
		log.Printf("lifecycle: enqueue verification email for %s failed: %v", u.Email, err)
	}
}
