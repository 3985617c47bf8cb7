package auth

import (
	"context"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

// DefaultAccessTokenExpiry is one hour in seconds.
const DefaultAccessTokenExpiry = 3600

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   int64
	User        *domain.User
	ProfileID   string
}

// Login verifies credentials and issues a role-scoped access token
// carrying the volunteer or organization profile id.
type Login struct {
	users         ports.UserRepository
	volunteers    ports.VolunteerRepository
	organizations ports.OrganizationRepository
	hasher        ports.PasswordHasher
	issuer        ports.TokenIssuer
	accessExp     int64
}

func NewLogin(users ports.UserRepository, volunteers ports.VolunteerRepository, organizations ports.OrganizationRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, accessExp int64) *Login {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	return &Login{
		users:         users,
		volunteers:    volunteers,
		organizations: organizations,
		hasher:        hasher,
		issuer:        issuer,
		accessExp:     accessExp,
	}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}

	profileID, err := uc.profileID(ctx, user)
	if err != nil {
		return nil, err
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String(), user.Role, profileID, uc.accessExp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   uc.accessExp,
		User:        user,
		ProfileID:   profileID,
	}, nil
}

func (uc *Login) profileID(ctx context.Context, user *domain.User) (string, error) {
	switch user.Role {
	case domain.RoleVolunteer:
		profile, err := uc.volunteers.GetByUserID(ctx, user.ID)
		if err != nil {
			return "", err
		}
		if profile == nil {
			return "", domerrors.ErrVolunteerNotFound
		}
		return profile.ID.String(), nil
	case domain.RoleOrganization:
		profile, err := uc.organizations.GetByUserID(ctx, user.ID)
		if err != nil {
			return "", err
		}
		if profile == nil {
			return "", domerrors.ErrOrganizationNotFound
		}
		return profile.ID.String(), nil
	default:
		// Admins have no profile row.
		return "", nil
	}
}
