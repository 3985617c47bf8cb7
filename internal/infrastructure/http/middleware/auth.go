package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
)

// AuthValidator validates the JWT and sets the principal in context (see
// PrincipalFromContext).
type AuthValidator struct {
	issuer ports.TokenIssuer
}

func NewAuthValidator(issuer ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{issuer: issuer}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeErr(w, http.StatusUnauthorized, "missing or invalid authorization")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		userID, role, profileID, err := m.issuer.ValidateAccessToken(tokenString)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid token")
			return
		}
		uid, err := uuid.Parse(userID)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid token")
			return
		}
		principal := Principal{UserID: domain.NewUserID(uid), Role: role}
		if profileID != "" {
			pid, err := uuid.Parse(profileID)
			if err != nil {
				writeErr(w, http.StatusUnauthorized, "invalid token")
				return
			}
			principal.ProfileID = pid
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// RequireRole rejects authenticated callers whose role does not match.
// Must run after AuthValidator.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeErr(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if principal.Role != role {
				writeErr(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
