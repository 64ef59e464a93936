package service

import (
	"context"
	"time"

	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/folio-cms/folio/shared/logger"
	"github.com/folio-cms/folio/shared/utils"
)

type AuthService interface {
	Login(ctx context.Context, creds domain.Credentials) (string, time.Time, error)
	Me(ctx context.Context, credential string) (domain.Caller, error)
}

type UserStorage interface {
	SaveUser(ctx context.Context, user domain.User) (domain.User, error)
	UserByEmail(ctx context.Context, email domain.Email) (domain.User, error)
	SetAdmin(ctx context.Context, id domain.UserId, admin bool) error
}

type Jwt interface {
	NewToken(user domain.User) (string, time.Time, error)
}

type Auth struct {
	storage  UserStorage
	jwt      Jwt
	identity CallerResolver
}

func NewAuth(storage UserStorage, jwt Jwt, identity CallerResolver) *Auth {
	return &Auth{storage: storage, jwt: jwt, identity: identity}
}

// Login checks the password and issues a session token.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, time.Time, error) {
	email := utils.NormalizeEmail(creds.Email)

	user, err := a.storage.UserByEmail(ctx, email)
	if err != nil {
		// to not leak existing users
		if errors.IsNotFound(err) {
			return "", time.Time{}, errors.Unauthorized("Invalid credentials")
		}
		return "", time.Time{}, err
	}

	if !utils.CheckPassword(user.PassHash, creds.Password) {
		logger.Log.Info("password verification failed", "user_id", user.Id)
		return "", time.Time{}, errors.Unauthorized("Invalid credentials")
	}

	token, expiresAt, err := a.jwt.NewToken(user)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (a *Auth) Me(ctx context.Context, credential string) (domain.Caller, error) {
	return a.identity.ResolveCaller(ctx, credential)
}

// CreateUser registers an account. Used by the admin tool, there is no public sign-up.
func (a *Auth) CreateUser(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	email := utils.NormalizeEmail(creds.Email)
	if email == "" {
		return domain.User{}, errors.Validation("Email is required")
	}
	if len(creds.Password) < 8 {
		return domain.User{}, errors.Validation("Password must be at least 8 characters")
	}

	hash, err := utils.HashPassword(creds.Password)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}
	return a.storage.SaveUser(ctx, domain.User{Email: email, PassHash: hash})
}

// SetAdmin grants or revokes admin membership for the account with this email.
func (a *Auth) SetAdmin(ctx context.Context, email domain.Email, admin bool) error {
	user, err := a.storage.UserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	return a.storage.SetAdmin(ctx, user.Id, admin)
}
