package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
)

type contextKey string

const principalContextKey contextKey = "principal"

// Principal is the authenticated caller extracted from the access token.
// ProfileID is the volunteer or organization row matching the role; it is
// the zero uuid for admins.
type Principal struct {
	UserID    domain.UserID
	Role      domain.Role
	ProfileID uuid.UUID
}

// VolunteerID returns the profile id as a volunteer id. Only meaningful
// when Role is VOLUNTEER.
func (p Principal) VolunteerID() domain.VolunteerID {
	return domain.NewVolunteerID(p.ProfileID)
}

// OrganizationID returns the profile id as an organization id. Only
// meaningful when Role is ORGANIZATION.
func (p Principal) OrganizationID() domain.OrganizationID {
	return domain.NewOrganizationID(p.ProfileID)
}

// WithPrincipal injects the principal into the context.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext returns the principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(Principal)
	return p, ok
}
