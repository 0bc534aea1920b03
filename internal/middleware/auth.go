// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/profilekeeper/internal/auth"
)

type ctxKey string

const principalKey ctxKey = "principal"

// tokenCookieName is the cookie the login endpoint sets; the resolver
// accepts it as an alternative to the Authorization header.
const tokenCookieName = "token"

// WithIdentity resolves the authenticated principal for each request.
//
// It looks for a session token in the "Authorization: Bearer ..." header
// first, then in the "token" cookie. A token that verifies against secret
// places the decoded claims into the request context. Requests without a
// token, or with an invalid one, pass through unchanged: the absence of a
// principal is the normal unauthenticated signal, and it is up to the
// handlers to turn it into a 401 where authentication is required.
func WithIdentity(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				if c, err := r.Cookie(tokenCookieName); err == nil {
					tokenString = c.Value
				}
			}
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.VerifyToken(tokenString, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext extracts the authenticated principal from the
// request context. Returns nil if the request carried no valid token.
func PrincipalFromContext(ctx context.Context) *auth.Claims {
	val := ctx.Value(principalKey)
	if c, ok := val.(*auth.Claims); ok {
		return c
	}
	return nil
}

// bearerToken returns the token from an "Authorization: Bearer ..." header,
// or "" when the header is absent or differently shaped.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
