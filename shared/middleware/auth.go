package middleware

import (
	"context"
	"net/http"

	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
	"github.com/folio-cms/folio/shared/logger"
	"github.com/folio-cms/folio/shared/utils"
)

// CallerResolver turns a bearer credential into a caller identity.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, credential string) (domain.Caller, error)
}

// Key to store the caller in the request context
type key int

const CallerKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	resolver      CallerResolver
	secureCookies bool
}

func NewAuth(resolver CallerResolver, secureCookies bool) *Auth {
	return &Auth{
		resolver:      resolver,
		secureCookies: secureCookies,
	}
}

// NeedAuth returns middleware that requires authentication
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that requires admin authentication
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

// OptionalAuth populates the caller when the credential resolves, but doesn't require it
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := utils.BearerToken(r)
			if credential == "" {
				next.ServeHTTP(w, r)
				return
			}
			caller, err := a.resolver.ResolveCaller(r.Context(), credential)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := utils.BearerToken(r)
			if credential == "" {
				utils.WriteErrorAndStatusCode(w, errors.Unauthorized("Unauthorized"))
				return
			}

			caller, err := a.resolver.ResolveCaller(r.Context(), credential)
			if err != nil {
				if errors.KindOf(err) == errors.KindUnauthorized {
					a.clearCookie(w)
				}
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			if adminOnly && !caller.Admin {
				logger.Log.Warn("admin route denied", "caller_id", caller.Id, "path", r.URL.Path)
				utils.WriteErrorAndStatusCode(w, errors.Forbidden("Forbidden"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// clearCookie drops a stale session cookie so browsers stop resending it.
func (a *Auth) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, CallerKey, &caller)
}

// GetCallerFromContext retrieves the caller put there by the auth middleware
func GetCallerFromContext(r *http.Request) *domain.Caller {
	caller, ok := r.Context().Value(CallerKey).(*domain.Caller)
	if !ok {
		return nil
	}
	return caller
}
