package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/service"
	"github.com/yamatodev/dashboard/pkg/httpx"
	"github.com/yamatodev/dashboard/pkg/slogx"
)

type ctxKeyUser struct{}

// UserFromContext returns the authenticated user placed there by
// AuthnMiddleware.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(ctxKeyUser{}).(domain.User)
	return user, ok
}

// AuthnMiddleware guards an endpoint with bearer token authentication. Any
// token defect yields the same 401; a valid token on a deactivated account
// yields 403. The resolved user lands in the request context.
func AuthnMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token, ok := bearerToken(r)
			if !ok {
				httpx.ErrUnauthorized.Write(w)
				return
			}

			user, err := auth.ResolveToken(ctx, token)
			if err != nil {
				if errors.Is(err, service.ErrAccountDisabled) {
					httpx.ErrAccountDisabled.Write(w)
					return
				}
				log.Debug("token rejected", "err", err)
				httpx.ErrUnauthorized.Write(w)
				return
			}

			ctx = context.WithValue(ctx, ctxKeyUser{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
