package middleware

import (
	"net/http"

	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

// RequireRole rejects requests whose role claim is not one of roles.
// Anonymous requests get 401, authenticated ones with another role get 403.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !ctxutil.HasRole(r.Context(), roles...) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
