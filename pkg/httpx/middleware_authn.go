package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/jotmail/jotmail/pkg/jwtx"
	"github.com/jotmail/jotmail/pkg/slogx"
)

// AuthnMiddleware is the session verification guard. It extracts the
// bearer token, verifies it, and injects the account ID into the request
// context. Every failure short-circuits with 401 before the handler runs;
// the body never says whether the token was missing, tampered or expired.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("session verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = contextWithSession(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithSession(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAccountID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "unauthenticated",
		"error_description": "a valid session token is required",
	})
}
