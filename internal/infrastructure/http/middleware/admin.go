package middleware

import (
	"net/http"
)

const adminSecretHeader = "X-DZV-Admin-Secret"

// RequireAdminSecret returns a middleware that requires X-DZV-Admin-Secret
// to match the given secret. If secret is empty, all requests are rejected
// with 401.
func RequireAdminSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				writeErr(w, http.StatusUnauthorized, "admin API not configured (DZV_ADMIN_SECRET)")
				return
			}
			if r.Header.Get(adminSecretHeader) != secret {
				writeErr(w, http.StatusUnauthorized, "invalid or missing admin secret")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
