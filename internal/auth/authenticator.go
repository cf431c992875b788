package auth

import (
	"context"
	"errors"

	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
)

// UserStore is the narrow slice of persistence the auth core depends on.
// *repository.UserRepo satisfies it; tests substitute in-memory fakes.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, name, email, passwordHash string, role model.Role, active bool) (uint64, error)
	Activate(ctx context.Context, id uint64) error
}

// Authenticator verifies email+password pairs against stored user records.
type Authenticator struct {
	users  UserStore
	hasher *Hasher
}

func NewAuthenticator(users UserStore, hasher *Hasher) *Authenticator {
	return &Authenticator{users: users, hasher: hasher}
}

// Authenticate returns the matching user, or ErrNoSuchUser / ErrBadPassword.
// Both failures unwrap to ErrInvalidCredentials; callers must not surface
// which one occurred.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	u, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrNoSuchUser
		}
		return model.User{}, err
	}
	if !a.hasher.Verify(u.PasswordHash, password) {
		return model.User{}, ErrBadPassword
	}
	return u, nil
}
