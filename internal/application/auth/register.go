package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      domain.Role

	// Volunteer profile fields.
	Wilaya     string
	Commune    string
	Motivation string

	// Organization profile fields.
	OrganizationName string
	OrganizationType domain.OrganizationType
	Description      string
}

type RegisterResult struct {
	User      *domain.User
	ProfileID string
}

// Register creates an account and its role profile (volunteer or
// organization) in one transaction.
type Register struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher) *Register {
	return &Register{users: users, hasher: hasher}
}

func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, domerrors.ErrInvalidCredentials
	}
	if input.Role != domain.RoleVolunteer && input.Role != domain.RoleOrganization {
		return nil, domerrors.ErrPermissionDenied
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailTaken
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         input.Role,
		IsActive:     true,
		CreatedAt:    now,
	}

	if input.Role == domain.RoleVolunteer {
		profile := &domain.Volunteer{
			ID:         domain.NewVolunteerID(uuid.New()),
			UserID:     user.ID,
			Wilaya:     input.Wilaya,
			Commune:    input.Commune,
			Motivation: input.Motivation,
			BadgeLevel: domain.BadgeBronze,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.users.CreateVolunteerAccount(ctx, user, profile); err != nil {
			return nil, err
		}
		return &RegisterResult{User: user, ProfileID: profile.ID.String()}, nil
	}

	orgType := input.OrganizationType
	if orgType == "" {
		orgType = domain.OrgTypeOther
	}
	profile := &domain.Organization{
		ID:          domain.NewOrganizationID(uuid.New()),
		UserID:      user.ID,
		Name:        input.OrganizationName,
		Type:        orgType,
		Wilaya:      input.Wilaya,
		Description: input.Description,
		CreatedAt:   now,
	}
	if err := uc.users.CreateOrganizationAccount(ctx, user, profile); err != nil {
		return nil, err
	}
	return &RegisterResult{User: user, ProfileID: profile.ID.String()}, nil
}
