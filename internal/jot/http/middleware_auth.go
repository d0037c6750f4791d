package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jotapp/jot/internal/jot/domain"
	"github.com/jotapp/jot/pkg/httpx"
	"github.com/jotapp/jot/pkg/jwtx"
	"github.com/jotapp/jot/pkg/slogx"
)

const (
	msgTokenNotFound = "Token was not found"
	msgTokenInvalid  = "Token is not valid"
	msgInternalError = "Internal server error"
)

type userCtxKey struct{}

func withUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// UserFromContext returns the authenticated user attached by requireAuth.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(domain.User)
	return user, ok
}

// requireAuth gates a route behind a valid token. The token is read from the
// "token" cookie first, falling back to an Authorization bearer header. On
// success the resolved user is attached to the request context.
//
// A missing token and an invalid one both produce 403 with distinct bodies;
// failures resolving the token's user are reported as 500 without detail.
func (r *Router) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		log := slogx.FromContext(ctx)

		raw := tokenFromRequest(req)
		if raw == "" {
			httpx.WriteError(w, http.StatusForbidden, msgTokenNotFound)
			return
		}

		user, err := r.AuthService.ValidateToken(ctx, raw)
		if err != nil {
			if errors.Is(err, jwtx.ErrInvalidToken) {
				httpx.WriteError(w, http.StatusForbidden, msgTokenInvalid)
				return
			}
			log.Error("auth gate: user lookup failed", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, msgInternalError)
			return
		}

		ctx = withUser(ctx, user)
		ctx = context.WithValue(ctx, httpx.CtxKeyUserID, strconv.FormatInt(user.ID, 10))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func tokenFromRequest(req *http.Request) string {
	if cookie, err := req.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := req.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}
