package httpx

import "context"

type ctxKey string

const (
	CtxKeyAccountID ctxKey = "account_id"
	CtxKeyClaims    ctxKey = "claims" // full jwtx.Claims if a handler wants them
)

// AccountIDFromContext returns the authenticated account ID injected by
// AuthnMiddleware, or "" if the request is unauthenticated.
func AccountIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyAccountID).(string); ok {
		return v
	}
	return ""
}
