package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated user's id (decimal string) once the
// auth middleware has run. The rate limiter uses it to key per-user limits.
const CtxKeyUserID ctxKey = "user_id"

func userIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
