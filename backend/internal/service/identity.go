package service

import (
	"context"
	"fmt"

	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/folio-cms/folio/shared/jwt"
)

type AdminRegistry interface {
	IsAdmin(ctx context.Context, id domain.UserId) (bool, error)
}

// Identity resolves bearer credentials into callers.
type Identity struct {
	jwt      jwt.JwtService
	registry AdminRegistry
}

func NewIdentity(jwt jwt.JwtService, registry AdminRegistry) *Identity {
	return &Identity{jwt: jwt, registry: registry}
}

// ResolveCaller fails with Unauthorized for anything but an active session.
// Admin membership is looked up on every call and a missing row means not admin.
func (i *Identity) ResolveCaller(ctx context.Context, credential string) (domain.Caller, error) {
	if credential == "" {
		return domain.Caller{}, errors.Unauthorized("Unauthorized")
	}
	claims, err := i.jwt.DecodeToken(credential)
	if err != nil {
		return domain.Caller{}, errors.Unauthorized("Unauthorized")
	}

	admin, err := i.registry.IsAdmin(ctx, claims.Subject)
	if err != nil {
		return domain.Caller{}, errors.Store(fmt.Errorf("admin lookup: %w", err))
	}
	return domain.Caller{Id: claims.Subject, Email: claims.Email, Admin: admin}, nil
}
